package models

import "time"

type Interest struct {
	ID         int64
	FromUserID int64
	ToUserID   int64
	CreatedAt  time.Time
}
