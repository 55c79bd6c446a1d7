package service

import (
	"Lyra_Vid/internal/apperr"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func validRegisterParams() RegisterParams {
	return RegisterParams{
		Firstname:       "三",
		Lastname:        "张",
		Username:        "zhangsan",
		Email:           "zhangsan@example.com",
		Password:        "password1",
		PasswordConfirm: "password1",
		Gender:          "male",
		Country:         "China",
		Birthday:        time.Date(2000, 3, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestRegisterValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*RegisterParams)
	}{
		{"缺名字", func(p *RegisterParams) { p.Firstname = "" }},
		{"缺姓氏", func(p *RegisterParams) { p.Lastname = "" }},
		{"缺用户名", func(p *RegisterParams) { p.Username = "" }},
		{"缺邮箱", func(p *RegisterParams) { p.Email = "" }},
		{"缺密码", func(p *RegisterParams) { p.Password = "" }},
		{"缺性别", func(p *RegisterParams) { p.Gender = "" }},
		{"缺国家", func(p *RegisterParams) { p.Country = "" }},
		{"缺生日", func(p *RegisterParams) { p.Birthday = time.Time{} }},
		{"密码不一致", func(p *RegisterParams) { p.PasswordConfirm = "password2" }},
		{"密码太短", func(p *RegisterParams) { p.Password = "abc123"; p.PasswordConfirm = "abc123" }},
		{"用户名太短", func(p *RegisterParams) { p.Username = "ab" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			userRepo := newFakeUserRepo()
			store := &fakeStore{}
			svc := NewUserService(userRepo, store)

			params := validRegisterParams()
			tc.mutate(&params)

			_, err := svc.Register(params)
			require.True(t, errors.Is(err, apperr.ErrValidation), "got %v", err)
			require.Empty(t, userRepo.users, "校验失败不应该落库")
			require.Empty(t, store.provisioned, "校验失败不应该建目录")
		})
	}
}

func TestRegisterHashesPasswordAndProvisionsDir(t *testing.T) {
	userRepo := newFakeUserRepo()
	store := &fakeStore{}
	svc := NewUserService(userRepo, store)

	user, err := svc.Register(validRegisterParams())
	require.NoError(t, err)

	require.NotEqual(t, "password1", user.Password, "密码不能明文存储")
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password1")))
	require.Equal(t, []string{"zhangsan"}, store.provisioned)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewUserService(userRepo, &fakeStore{})

	_, err := svc.Register(validRegisterParams())
	require.NoError(t, err)

	params := validRegisterParams()
	params.Email = "other@example.com"
	_, err = svc.Register(params)
	require.True(t, errors.Is(err, apperr.ErrDuplicateKey), "got %v", err)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewUserService(userRepo, &fakeStore{})

	_, err := svc.Register(validRegisterParams())
	require.NoError(t, err)

	params := validRegisterParams()
	params.Username = "lisi"
	_, err = svc.Register(params)
	require.True(t, errors.Is(err, apperr.ErrDuplicateKey), "got %v", err)
	require.Len(t, userRepo.users, 1)
}

func TestRegisterProvisionFailure(t *testing.T) {
	userRepo := newFakeUserRepo()
	store := &fakeStore{provisionErr: errors.New("disk full")}
	svc := NewUserService(userRepo, store)

	_, err := svc.Register(validRegisterParams())
	require.True(t, errors.Is(err, apperr.ErrStorage), "got %v", err)
}

func TestLoginWrongCredentials(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewUserService(userRepo, &fakeStore{})

	_, err := svc.Register(validRegisterParams())
	require.NoError(t, err)

	_, err = svc.Login("zhangsan", "wrongpassword")
	require.True(t, errors.Is(err, apperr.ErrValidation), "got %v", err)

	// 不存在的handle和密码错误报一样的错，不泄露账号是否存在
	_, err = svc.Login("nobody", "password1")
	require.True(t, errors.Is(err, apperr.ErrValidation), "got %v", err)
}

func TestLoginIssuesToken(t *testing.T) {
	os.Setenv("JWT_SECRET_KEY", "test_secret")
	defer os.Unsetenv("JWT_SECRET_KEY")

	userRepo := newFakeUserRepo()
	svc := NewUserService(userRepo, &fakeStore{})

	_, err := svc.Register(validRegisterParams())
	require.NoError(t, err)

	tokenString, err := svc.Login("zhangsan", "password1")
	require.NoError(t, err)

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return []byte("test_secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	require.Equal(t, "zhangsan", claims["username"])
}

func TestUpdateBioRejectsBlank(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewUserService(userRepo, &fakeStore{})

	err := svc.UpdateBio("zhangsan", "   ")
	require.True(t, errors.Is(err, apperr.ErrValidation), "got %v", err)
	require.Empty(t, userRepo.patches)
}

func TestUpdateLocationPatchesByHandle(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewUserService(userRepo, &fakeStore{})

	require.NoError(t, svc.UpdateLocation("zhangsan", "China", "Hangzhou", "Zhejiang"))
	require.Len(t, userRepo.patches, 1)
	require.Equal(t, map[string]interface{}{
		"country": "China",
		"city":    "Hangzhou",
		"state":   "Zhejiang",
	}, userRepo.patches[0])
}
