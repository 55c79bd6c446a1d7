package storage

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// Store 是内容存储的边界：注册时给账号开辟存储目录，上传时落盘并返回文件引用。
// 实体层只记录返回的文件名，不关心文件怎么存
type Store interface {
	// ProvisionAccountDir 为新账号创建上传目录。失败必须向上抛，不能吞掉
	ProvisionAccountDir(username string) error
	// SaveUpload 把上传内容写进该账号的目录，返回存储文件名（时间戳+原扩展名）
	SaveUpload(username, originalName string, src io.Reader) (string, error)
}

type diskStore struct {
	baseDir string
}

// NewDiskStore 本地磁盘实现，根目录不存在就先建出来
func NewDiskStore(baseDir string) (Store, error) {
	if baseDir == "" {
		baseDir = "./public/uploads"
	}
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, errors.Wrap(err, "创建上传根目录失败")
	}
	return &diskStore{baseDir: baseDir}, nil
}

func (s *diskStore) ProvisionAccountDir(username string) error {
	dir := filepath.Join(s.baseDir, username)
	if err := os.Mkdir(dir, 0755); err != nil && !os.IsExist(err) {
		return errors.Wrapf(err, "创建账号目录失败, username: %s", username)
	}
	return nil
}

func (s *diskStore) SaveUpload(username, originalName string, src io.Reader) (string, error) {
	filename := strconv.FormatInt(time.Now().UnixMilli(), 10) + filepath.Ext(originalName)
	dst, err := os.Create(filepath.Join(s.baseDir, username, filename))
	if err != nil {
		return "", errors.Wrap(err, "创建上传文件失败")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", errors.Wrap(err, "写入上传文件失败")
	}
	return filename, nil
}
