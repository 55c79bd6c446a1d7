package dto

// UserInfo 在各响应中复用的、精简过的账号信息（不含凭据）
type UserInfo struct {
	ID        uint64 `json:"id"`
	Username  string `json:"username"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Avatar    string `json:"avatar"`
}
