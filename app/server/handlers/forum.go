package handlers

import (
	"errors"
	"net/http"
	"time"

	"news-backend/app/server/constants"
	"news-backend/app/server/middlewares"
	"news-backend/app/server/models"
	"news-backend/app/server/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (a *App) ForumList(c echo.Context) error {
	var forums []models.Forum
	if err := a.db.WithContext(c.Request().Context()).Order("id ASC").Find(&forums).Error; err != nil {
		a.l.Error("failed to list forums", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, ErrTypeInternal)
	}

	return c.JSON(http.StatusOK, forums)
}

type discussionListItem struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	CreationDate time.Time `json:"creation_date"`
	Author       string    `json:"author"`
	NbMessages   int64     `json:"nbMessages"`
}

func (a *App) ForumDiscussions(c echo.Context) error {
	rctx := c.Request().Context()

	var forum models.Forum
	if err := a.db.WithContext(rctx).First(&forum, "label = ?", c.Param("label")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusNotFound, ErrTypeNotFound)
		}
		a.l.Error("failed to find forum", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, ErrTypeInternal)
	}

	var discussions []models.Discussion
	if err := a.db.WithContext(rctx).Preload("User").
		Where("forum_id = ?", forum.ID).
		Order("creation_date DESC").
		Offset(a.parsePage(c)).Limit(constants.PageLimit).
		Find(&discussions).Error; err != nil {
		a.l.Error("failed to list discussions", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, ErrTypeInternal)
	}

	// 留言数一次查完，不在循环里发请求
	counts := map[uint]int64{}
	if len(discussions) > 0 {
		ids := make([]uint, 0, len(discussions))
		for _, discussion := range discussions {
			ids = append(ids, discussion.ID)
		}

		var rows []struct {
			DiscussionID uint
			Count        int64
		}
		if err := a.db.WithContext(rctx).Model(&models.Message{}).
			Select("discussion_id", "count(*) AS count").
			Where("discussion_id IN ?", ids).
			Group("discussion_id").
			Scan(&rows).Error; err != nil {
			a.l.Error("failed to count messages", zap.Error(err))
			return a.er(c, http.StatusInternalServerError, ErrTypeInternal)
		}
		for _, row := range rows {
			counts[row.DiscussionID] = row.Count
		}
	}

	res := []discussionListItem{}
	for _, discussion := range discussions {
		res = append(res, discussionListItem{
			ID:           discussion.ID,
			Name:         discussion.Name,
			CreationDate: discussion.CreationDate,
			Author:       discussion.User.Name,
			NbMessages:   counts[discussion.ID],
		})
	}

	return c.JSON(http.StatusOK, res)
}

type discussionCreateRequest struct {
	Forum string `json:"forum"`
	Name  string `json:"name"`
}

func (a *App) DiscussionCreate(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req discussionCreateRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest, ErrTypeValidation)
	}

	if req.Name == "" {
		return a.erMsg(c, http.StatusBadRequest, ErrTypeValidation, "Please add a name")
	}

	var forum models.Forum
	if err := a.db.WithContext(rctx).First(&forum, "label = ?", req.Forum).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusNotFound, ErrTypeNotFound)
		}
		a.l.Error("failed to find forum", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, ErrTypeInternal)
	}

	discussion := models.Discussion{
		Name:         utils.Sanitize(req.Name),
		CreationDate: time.Now(),
		ForumID:      forum.ID,
		UserID:       middlewares.UserFrom(c).ID,
	}
	if err := a.db.WithContext(rctx).Create(&discussion).Error; err != nil {
		a.l.Error("failed to create discussion", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, ErrTypeInternal)
	}

	return c.JSON(http.StatusCreated, &discussion)
}

type messageListItem struct {
	ID          uint          `json:"id"`
	Content     string        `json:"content"`
	Date        time.Time     `json:"date"`
	UpdatedDate *time.Time    `json:"updated_date"`
	Author      articleAuthor `json:"author"`
	Likes       int64         `json:"likes"`
	Dislikes    int64         `json:"dislikes"`
}

func (a *App) DiscussionMessages(c echo.Context) error {
	rctx := c.Request().Context()

	var discussion models.Discussion
	if err := a.db.WithContext(rctx).First(&discussion, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusNotFound, ErrTypeNotFound)
		}
		a.l.Error("failed to find discussion", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, ErrTypeInternal)
	}

	var messages []models.Message
	if err := a.db.WithContext(rctx).Preload("User").
		Where("discussion_id = ?", discussion.ID).
		Order("date ASC").
		Offset(a.parsePage(c)).Limit(constants.PageLimit).
		Find(&messages).Error; err != nil {
		a.l.Error("failed to list messages", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, ErrTypeInternal)
	}

	// 聚合投票
	likes := map[uint]int64{}
	dislikes := map[uint]int64{}
	if len(messages) > 0 {
		ids := make([]uint, 0, len(messages))
		for _, message := range messages {
			ids = append(ids, message.ID)
		}

		var rows []struct {
			MessageID uint
			Like      string
			Count     int64
		}
		if err := a.db.WithContext(rctx).Model(&models.MessageLike{}).
			Select("message_id", "\"like\"", "count(*) AS count").
			Where("message_id IN ?", ids).
			Group("message_id").Group("\"like\"").
			Scan(&rows).Error; err != nil {
			a.l.Error("failed to count votes", zap.Error(err))
			return a.er(c, http.StatusInternalServerError, ErrTypeInternal)
		}
		for _, row := range rows {
			if row.Like == models.VoteLike {
				likes[row.MessageID] = row.Count
			} else {
				dislikes[row.MessageID] = row.Count
			}
		}
	}

	res := []messageListItem{}
	for _, message := range messages {
		res = append(res, messageListItem{
			ID:          message.ID,
			Content:     message.Content,
			Date:        message.Date,
			UpdatedDate: message.UpdatedDate,
			Author: articleAuthor{
				ID:    message.User.ID,
				Name:  message.User.Name,
				Image: message.User.Image,
			},
			Likes:    likes[message.ID],
			Dislikes: dislikes[message.ID],
		})
	}

	return c.JSON(http.StatusOK, res)
}

type messagePostRequest struct {
	Content string `json:"content"`
}

func (a *App) MessagePost(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req messagePostRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest, ErrTypeValidation)
	}

	if req.Content == "" {
		return a.erMsg(c, http.StatusBadRequest, ErrTypeValidation, "Please add a content")
	}

	var discussion models.Discussion
	if err := a.db.WithContext(rctx).First(&discussion, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusNotFound, ErrTypeNotFound)
		}
		a.l.Error("failed to find discussion", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, ErrTypeInternal)
	}

	message := models.Message{
		Content:      utils.Sanitize(req.Content),
		Date:         time.Now(),
		DiscussionID: discussion.ID,
		UserID:       middlewares.UserFrom(c).ID,
	}
	if err := a.db.WithContext(rctx).Create(&message).Error; err != nil {
		a.l.Error("failed to create message", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, ErrTypeInternal)
	}

	return c.JSON(http.StatusCreated, &message)
}

type messageVoteRequest struct {
	Like string `json:"like"`
}

// MessageVote 一人一票：再次投同向票撤销，反向票改票
func (a *App) MessageVote(c echo.Context) error {
	caller := middlewares.UserFrom(c)
	rctx := c.Request().Context()

	// 绑定请求体
	var req messageVoteRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest, ErrTypeValidation)
	}

	if req.Like != models.VoteLike && req.Like != models.VoteDislike {
		return a.erMsg(c, http.StatusBadRequest, ErrTypeValidation, "Vote must be like or dislike")
	}

	var message models.Message
	if err := a.db.WithContext(rctx).First(&message, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusNotFound, ErrTypeNotFound)
		}
		a.l.Error("failed to find message", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, ErrTypeInternal)
	}

	var vote models.MessageLike
	err := a.db.WithContext(rctx).
		First(&vote, "user_id = ? AND message_id = ?", caller.ID, message.ID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		vote = models.MessageLike{UserID: caller.ID, MessageID: message.ID, Like: req.Like}
		if err := a.db.WithContext(rctx).Create(&vote).Error; err != nil {
			a.l.Error("failed to create vote", zap.Error(err))
			return a.er(c, http.StatusInternalServerError, ErrTypeInternal)
		}
	case err != nil:
		a.l.Error("failed to find vote", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, ErrTypeInternal)
	case vote.Like == req.Like:
		// 同向重复投票 = 撤销
		if err := a.db.WithContext(rctx).
			Where("user_id = ? AND message_id = ?", caller.ID, message.ID).
			Delete(&models.MessageLike{}).Error; err != nil {
			a.l.Error("failed to delete vote", zap.Error(err))
			return a.er(c, http.StatusInternalServerError, ErrTypeInternal)
		}
	default:
		if err := a.db.WithContext(rctx).Model(&models.MessageLike{}).
			Where("user_id = ? AND message_id = ?", caller.ID, message.ID).
			Update("like", req.Like).Error; err != nil {
			a.l.Error("failed to update vote", zap.Error(err))
			return a.er(c, http.StatusInternalServerError, ErrTypeInternal)
		}
	}

	return c.JSON(http.StatusOK, map[string]any{})
}
