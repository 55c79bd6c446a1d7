package service

import (
	"Lyra_Vid/internal/apperr"
	"Lyra_Vid/internal/model"
	"Lyra_Vid/internal/repository"
	"Lyra_Vid/pkg/logger"
	"Lyra_Vid/pkg/storage"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RegisterParams 注册入参，字段约束在进入核心前就校验完
type RegisterParams struct {
	Firstname       string
	Lastname        string
	Username        string
	Email           string
	Password        string
	PasswordConfirm string
	Gender          string
	Country         string
	Birthday        time.Time
}

// 账号服务接口：注册、登录、资料编辑。资料编辑都是按handle过滤的部分字段补丁，重复应用结果不变
type UserService interface {
	Register(params RegisterParams) (*model.User, error)
	Login(username, password string) (string, error)

	UpdateName(username, firstname, lastname string) error
	UpdateLocation(username, country, city, state string) error
	UpdateBio(username, bio string) error
	UpdateAvatar(username, avatar string) error
}

type userService struct {
	userRepo repository.UserRepository
	store    storage.Store
}

func NewUserService(userRepo repository.UserRepository, store storage.Store) UserService {
	return &userService{userRepo: userRepo, store: store}
}

// 注册逻辑：1、字段校验 2、密码加密存储 3、创建账号（唯一性由存储层兜底）4、开辟账号的上传目录
func (s *userService) Register(params RegisterParams) (*model.User, error) {
	if params.Firstname == "" || params.Lastname == "" || params.Username == "" ||
		params.Email == "" || params.Password == "" || params.Gender == "" ||
		params.Country == "" || params.Birthday.IsZero() {
		return nil, apperr.Validation("所有字段都是必填的")
	}
	if params.Password != params.PasswordConfirm {
		return nil, apperr.Validation("两次输入的密码不一致")
	}
	if len(params.Password) < 7 {
		return nil, apperr.Validation("密码至少需要7个字符")
	}
	if len(params.Username) < 3 || len(params.Username) > 32 {
		return nil, apperr.Validation("用户名需要3-32个字符")
	}

	// 先查重给出更准确的提示，真正的唯一性由存储层的唯一索引在写入时兜底
	if _, err := s.userRepo.FindByUsername(params.Username); err == nil {
		return nil, apperr.Duplicate("用户名已被占用")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.userRepo.FindByEmail(params.Email); err == nil {
		return nil, apperr.Duplicate("邮箱已被注册")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	newUser := &model.User{
		Username:  params.Username,
		Email:     params.Email,
		Password:  string(hashedPassword),
		Firstname: params.Firstname,
		Lastname:  params.Lastname,
		Gender:    params.Gender,
		Country:   params.Country,
		Birthday:  params.Birthday,
	}
	if err := s.userRepo.Create(newUser); err != nil {
		return nil, err
	}

	// 账号已落库但目录没建出来，这不算注册成功，必须作为独立的失败向上报
	if err := s.store.ProvisionAccountDir(newUser.Username); err != nil {
		logger.Log.WithError(err).WithField("username", newUser.Username).
			Error("账号已创建但上传目录创建失败")
		return nil, apperr.Storage("账号存储目录创建失败")
	}
	return newUser, nil
}

// 登录逻辑：1、按handle找账号 2、bcrypt比对密码 3、签发72小时的JWT
func (s *userService) Login(username, password string) (string, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperr.Validation("用户名或密码错误")
		}
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", apperr.Validation("用户名或密码错误")
	}

	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(time.Hour * 72).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	secretKey := []byte(os.Getenv("JWT_SECRET_KEY"))
	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

func (s *userService) UpdateName(username, firstname, lastname string) error {
	if firstname == "" || lastname == "" {
		return apperr.Validation("姓和名都是必填的")
	}
	return s.userRepo.UpdateByUsername(username, map[string]interface{}{
		"firstname": firstname,
		"lastname":  lastname,
	})
}

func (s *userService) UpdateLocation(username, country, city, state string) error {
	if country == "" {
		return apperr.Validation("国家不能为空")
	}
	return s.userRepo.UpdateByUsername(username, map[string]interface{}{
		"country": country,
		"city":    city,
		"state":   state,
	})
}

func (s *userService) UpdateBio(username, bio string) error {
	if strings.TrimSpace(bio) == "" {
		return apperr.Validation("先写点什么吧")
	}
	return s.userRepo.UpdateByUsername(username, map[string]interface{}{
		"bio": bio,
	})
}

func (s *userService) UpdateAvatar(username, avatar string) error {
	if avatar == "" {
		return apperr.Validation("请选择一张图片")
	}
	return s.userRepo.UpdateByUsername(username, map[string]interface{}{
		"avatar": avatar,
	})
}
