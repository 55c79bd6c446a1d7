package dto

import (
	"Lyra_Vid/internal/service"
)

// ProfileResponse 主页投影的响应：账号资料+年龄+名下视频+主页评论+订阅者集合
type ProfileResponse struct {
	User        UserInfo          `json:"user"`
	Gender      string            `json:"gender"`
	Country     string            `json:"country"`
	City        string            `json:"city"`
	State       string            `json:"state"`
	Bio         string            `json:"bio"`
	Age         int               `json:"age"`
	Videos      []VideoResponse   `json:"videos"`
	Comments    []CommentResponse `json:"comments"`
	Subscribers []string          `json:"subscribers"`
}

func ToProfileResponse(p *service.ProfileProjection) ProfileResponse {
	return ProfileResponse{
		User: UserInfo{
			ID:        p.User.ID,
			Username:  p.User.Username,
			Firstname: p.User.Firstname,
			Lastname:  p.User.Lastname,
			Avatar:    p.User.Avatar,
		},
		Gender:      p.User.Gender,
		Country:     p.User.Country,
		City:        p.User.City,
		State:       p.User.State,
		Bio:         p.User.Bio,
		Age:         p.Age,
		Videos:      ToVideoResponses(p.Videos),
		Comments:    ToCommentResponses(p.Comments),
		Subscribers: p.Subscribers,
	}
}

// WatchResponse 播放页投影的响应
type WatchResponse struct {
	Video       VideoResponse     `json:"video"`
	Author      UserInfo          `json:"author"`
	Comments    []CommentResponse `json:"comments"`
	Likers      []string          `json:"likers"`
	Subscribers []string          `json:"subscribers"`
}

func ToWatchResponse(p *service.WatchProjection) WatchResponse {
	resp := WatchResponse{
		Video:       ToVideoResponse(p.Video),
		Comments:    ToCommentResponses(p.Comments),
		Likers:      p.Likers,
		Subscribers: p.Subscribers,
	}
	if p.Author != nil {
		resp.Author = UserInfo{
			ID:        p.Author.ID,
			Username:  p.Author.Username,
			Firstname: p.Author.Firstname,
			Lastname:  p.Author.Lastname,
			Avatar:    p.Author.Avatar,
		}
	}
	return resp
}
