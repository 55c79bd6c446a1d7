package dto

import (
	"Lyra_Vid/internal/model"
	"time"
)

type CommentResponse struct {
	ID          uint64    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Data        string    `json:"data"`
	AccountName string    `json:"account_name"`
	PostID      *uint64   `json:"post_id,omitempty"` // nil就是主页评论
	Likes       []string  `json:"likes"`
	Author      UserInfo  `json:"author"`
}

func ToCommentResponse(comment *model.Comment) CommentResponse {
	resp := CommentResponse{
		ID:          comment.ID,
		CreatedAt:   comment.CreatedAt,
		Data:        comment.Data,
		AccountName: comment.AccountName,
		PostID:      comment.PostID,
		Likes:       make([]string, 0, len(comment.Likes)),
	}
	for _, like := range comment.Likes {
		resp.Likes = append(resp.Likes, like.Username)
	}
	// 安全地填充作者信息
	if comment.AuthorUser.ID != 0 {
		resp.Author = UserInfo{
			ID:        comment.AuthorUser.ID,
			Username:  comment.AuthorUser.Username,
			Firstname: comment.AuthorUser.Firstname,
			Lastname:  comment.AuthorUser.Lastname,
			Avatar:    comment.AuthorUser.Avatar,
		}
	} else {
		resp.Author.Username = comment.Author
	}
	return resp
}

func ToCommentResponses(comments []model.Comment) []CommentResponse {
	response := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		response = append(response, ToCommentResponse(&comments[i]))
	}
	return response
}
