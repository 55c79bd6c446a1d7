package service

import (
	"Lyra_Vid/internal/apperr"
	"Lyra_Vid/internal/model"
	"io"
	"math/rand"
	"sort"
	"sync/atomic"

	"gorm.io/gorm"
)

// 内存版的仓库替身。接口化的分层让这些替身可以不碰任何基础设施，
// 但集合语义（冲突忽略、删不存在的成员是no-op）和真实存储层保持一致

type fakeUserRepo struct {
	users   map[string]*model.User
	patches []map[string]interface{}
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (f *fakeUserRepo) Create(user *model.User) error {
	for _, u := range f.users {
		if u.Username == user.Username || u.Email == user.Email {
			return apperr.Duplicate("用户名或邮箱已存在")
		}
	}
	user.ID = uint64(len(f.users) + 1)
	f.users[user.Username] = user
	return nil
}

func (f *fakeUserRepo) FindByUsername(username string) (*model.User, error) {
	user, ok := f.users[username]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) FindByEmail(email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) UpdateByUsername(username string, patch map[string]interface{}) error {
	f.patches = append(f.patches, patch)
	return nil
}

type fakeVideoRepo struct {
	videos map[uint64]*model.Video
	nextID uint64

	findCalls int32         // FindByID的回源次数，原子计数
	findGate  chan struct{} // 非nil时FindByID会阻塞到通道关闭，用来制造并发回源
}

func newFakeVideoRepo() *fakeVideoRepo {
	return &fakeVideoRepo{videos: make(map[uint64]*model.Video)}
}

func (f *fakeVideoRepo) Create(video *model.Video) error {
	for _, v := range f.videos {
		if v.Title == video.Title {
			return apperr.Duplicate("已经有同名的视频了")
		}
	}
	f.nextID++
	video.ID = f.nextID
	f.videos[video.ID] = video
	return nil
}

func (f *fakeVideoRepo) FindByID(videoID uint64) (*model.Video, error) {
	atomic.AddInt32(&f.findCalls, 1)
	if f.findGate != nil {
		<-f.findGate
	}
	video, ok := f.videos[videoID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return video, nil
}

func (f *fakeVideoRepo) FindByTitle(title string) (*model.Video, error) {
	for _, v := range f.videos {
		if v.Title == title {
			return v, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeVideoRepo) FindByAuthor(author string) ([]model.Video, error) {
	result := make([]model.Video, 0)
	for _, v := range f.videos {
		if v.Author == author {
			result = append(result, *v)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// 和ORDER BY RAND()一样：每次调用的子集和顺序都可能不同
func (f *fakeVideoRepo) FindRandom(limit int) ([]model.Video, error) {
	all := make([]model.Video, 0, len(f.videos))
	for _, v := range f.videos {
		all = append(all, *v)
	}
	rand.Shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (f *fakeVideoRepo) IncrementViews(videoID uint64) error {
	if v, ok := f.videos[videoID]; ok {
		v.Views++
	}
	return nil
}

func (f *fakeVideoRepo) GetVideoCache(videoID uint64) (*model.Video, error) { return nil, nil }
func (f *fakeVideoRepo) SetVideoCache(video *model.Video) error             { return nil }

type fakeCommentRepo struct {
	comments map[uint64]*model.Comment
	nextID   uint64
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[uint64]*model.Comment)}
}

func (f *fakeCommentRepo) Create(comment *model.Comment) error {
	f.nextID++
	comment.ID = f.nextID
	f.comments[comment.ID] = comment
	return nil
}

func (f *fakeCommentRepo) FindByID(commentID uint64) (*model.Comment, error) {
	comment, ok := f.comments[commentID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return comment, nil
}

func (f *fakeCommentRepo) FindByAccountName(accountName string) ([]model.Comment, error) {
	result := make([]model.Comment, 0)
	for _, cm := range f.comments {
		if cm.AccountName == accountName {
			result = append(result, *cm)
		}
	}
	return result, nil
}

func (f *fakeCommentRepo) FindByPostID(postID uint64) ([]model.Comment, error) {
	result := make([]model.Comment, 0)
	for _, cm := range f.comments {
		if cm.PostID != nil && *cm.PostID == postID {
			result = append(result, *cm)
		}
	}
	return result, nil
}

type fakeEngagementRepo struct {
	videoLikes   map[uint64]map[string]bool
	commentLikes map[uint64]map[string]bool
	subs         map[string]map[string]bool

	videoLikeInserts int
}

func newFakeEngagementRepo() *fakeEngagementRepo {
	return &fakeEngagementRepo{
		videoLikes:   make(map[uint64]map[string]bool),
		commentLikes: make(map[uint64]map[string]bool),
		subs:         make(map[string]map[string]bool),
	}
}

func addMember(sets map[uint64]map[string]bool, id uint64, member string) {
	if sets[id] == nil {
		sets[id] = make(map[string]bool)
	}
	sets[id][member] = true
}

func (f *fakeEngagementRepo) AddVideoLike(videoID uint64, username string) error {
	f.videoLikeInserts++
	addMember(f.videoLikes, videoID, username)
	return nil
}

func (f *fakeEngagementRepo) RemoveVideoLike(videoID uint64, username string) error {
	delete(f.videoLikes[videoID], username)
	return nil
}

func (f *fakeEngagementRepo) AddCommentLike(commentID uint64, username string) error {
	addMember(f.commentLikes, commentID, username)
	return nil
}

func (f *fakeEngagementRepo) RemoveCommentLike(commentID uint64, username string) error {
	delete(f.commentLikes[commentID], username)
	return nil
}

func (f *fakeEngagementRepo) AddSubscriber(target, subscriber string) error {
	if f.subs[target] == nil {
		f.subs[target] = make(map[string]bool)
	}
	f.subs[target][subscriber] = true
	return nil
}

func (f *fakeEngagementRepo) RemoveSubscriber(target, subscriber string) error {
	delete(f.subs[target], subscriber)
	return nil
}

func (f *fakeEngagementRepo) VideoLikers(videoID uint64) ([]string, error) {
	return sortedMembers(f.videoLikes[videoID]), nil
}

func (f *fakeEngagementRepo) Subscribers(target string) ([]string, error) {
	return sortedMembers(f.subs[target]), nil
}

func (f *fakeEngagementRepo) IsSubscribed(target, subscriber string) (bool, error) {
	return f.subs[target][subscriber], nil
}

func (f *fakeEngagementRepo) IsUserLikeVideo(videoID uint64, username string) (bool, error) {
	return f.videoLikes[videoID][username], nil
}

func sortedMembers(set map[string]bool) []string {
	members := make([]string, 0, len(set))
	for m := range set {
		members = append(members, m)
	}
	sort.Strings(members)
	return members
}

type fakeStore struct {
	provisionErr error
	provisioned  []string
}

func (f *fakeStore) ProvisionAccountDir(username string) error {
	if f.provisionErr != nil {
		return f.provisionErr
	}
	f.provisioned = append(f.provisioned, username)
	return nil
}

func (f *fakeStore) SaveUpload(username, originalName string, src io.Reader) (string, error) {
	return "1700000000000.mp4", nil
}

type fakeViewEvents struct {
	published []uint64
}

func (f *fakeViewEvents) PublishView(videoID uint64) error {
	f.published = append(f.published, videoID)
	return nil
}
