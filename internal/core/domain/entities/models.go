package entities

import (
	"fmt"
	"time"
)

// CommitKey identifies one commit of one repository
type CommitKey struct {
	Owner string `json:"owner"`
	Repo  string `json:"repo"`
	SHA   string `json:"sha"`
}

func (k CommitKey) String() string {
	return fmt.Sprintf("%s/%s@%s", k.Owner, k.Repo, k.SHA)
}

// KnownLogins carries identities the caller already resolved; nil means unknown
type KnownLogins struct {
	Author    *string
	Committer *string
}

// Snapshot is the persisted raw commit payload for one commit key
type Snapshot struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Owner     string    `json:"owner" gorm:"uniqueIndex:idx_snapshot_key"`
	Repo      string    `json:"repo" gorm:"uniqueIndex:idx_snapshot_key"`
	SHA       string    `json:"sha" gorm:"uniqueIndex:idx_snapshot_key"`
	Payload   string    `json:"payload" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Key returns the commit key of the snapshot
func (s *Snapshot) Key() CommitKey {
	return CommitKey{Owner: s.Owner, Repo: s.Repo, SHA: s.SHA}
}
