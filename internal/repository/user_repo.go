package repository

import (
	"Lyra_Vid/internal/apperr"
	"Lyra_Vid/internal/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// 账号仓库接口：1、插入账号 2、按handle/邮箱查找 3、按handle为过滤条件打字段补丁
type UserRepository interface {
	Create(user *model.User) error
	FindByUsername(username string) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	// UpdateByUsername 对所有username匹配的记录应用部分字段补丁，天然幂等
	UpdateByUsername(username string, patch map[string]interface{}) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// 唯一性靠users表的唯一索引在写入时兜底，撞车统一归为DuplicateKey
func (r *userRepository) Create(user *model.User) error {
	if err := r.db.Create(user).Error; err != nil {
		if isDuplicateErr(err) {
			return apperr.Duplicate("用户名或邮箱已存在")
		}
		return errors.Wrap(err, "创建账号失败")
	}
	return nil
}

func (r *userRepository) FindByUsername(username string) (*model.User, error) {
	var result model.User
	err := r.db.Where("username = ?", username).First(&result).Error
	if err != nil {
		return nil, err // 包括gorm.ErrRecordNotFound，由调用方分类
	}
	return &result, nil
}

func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	var result model.User
	err := r.db.Where("email = ?", email).First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *userRepository) UpdateByUsername(username string, patch map[string]interface{}) error {
	err := r.db.Model(&model.User{}).Where("username = ?", username).Updates(patch).Error
	if err != nil {
		return errors.Wrapf(err, "更新账号资料失败, username: %s", username)
	}
	return nil
}
