package dto

import (
	"Lyra_Vid/internal/model"
	"time"
)

type VideoResponse struct {
	ID          uint64    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Filename    string    `json:"filename"`
	Tags        []string  `json:"tags"`
	Views       uint64    `json:"views"`
	Adult       bool      `json:"adult"`
	Likes       []string  `json:"likes"` // 点过赞的handle集合
	Author      UserInfo  `json:"author"`
}

// ToVideoResponse 把DB模型转成API响应模型，点赞集合展开成handle列表
func ToVideoResponse(video *model.Video) VideoResponse {
	resp := VideoResponse{
		ID:          video.ID,
		CreatedAt:   video.CreatedAt,
		Title:       video.Title,
		Description: video.Description,
		Filename:    video.Filename,
		Tags:        video.Tags,
		Views:       video.Views,
		Adult:       video.Adult,
		Likes:       make([]string, 0, len(video.Likes)),
	}
	for _, like := range video.Likes {
		resp.Likes = append(resp.Likes, like.Username)
	}
	// 检查作者是否被成功preload
	if video.AuthorUser.ID != 0 {
		resp.Author = UserInfo{
			ID:        video.AuthorUser.ID,
			Username:  video.AuthorUser.Username,
			Firstname: video.AuthorUser.Firstname,
			Lastname:  video.AuthorUser.Lastname,
			Avatar:    video.AuthorUser.Avatar,
		}
	} else {
		// 没preload就至少把handle带上
		resp.Author.Username = video.Author
	}
	return resp
}

func ToVideoResponses(videos []model.Video) []VideoResponse {
	response := make([]VideoResponse, 0, len(videos))
	for i := range videos {
		response = append(response, ToVideoResponse(&videos[i]))
	}
	return response
}
