package models

import "time"

// ThreadMeta is the persisted summary row backing list views. The message
// history itself lives upstream; only summary metadata is stored here.
type ThreadMeta struct {
	ThreadID      string    `gorm:"column:thread_id;type:varchar(255);primaryKey" json:"threadId"`
	Title         string    `gorm:"column:title;type:varchar(512)" json:"title"`
	ArtistID      string    `gorm:"column:artist_id;type:varchar(255);index:idx_artist_id" json:"artistId"`
	ArtistName    string    `gorm:"column:artist_name;type:varchar(255)" json:"artistName"`
	LastMessageAt time.Time `gorm:"column:last_message_at;type:timestamp;index:idx_last_message_at" json:"lastMessageAt"`
	CreatedAt     time.Time `gorm:"column:created_at;type:timestamp" json:"createdAt"`
}

func (ThreadMeta) TableName() string {
	return "thread_meta"
}

// ThreadDetails is the API shape of one thread summary.
type ThreadDetails struct {
	Title         string `json:"title"`
	ArtistID      string `json:"artistId"`
	ArtistName    string `json:"artistName"`
	LastMessageAt string `json:"lastMessageAt"`
}
