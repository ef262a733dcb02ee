package tracker

import (
	"encoding/json"
	"time"
)

// Issue は1件のIssueレコード
// フィールド名は gh issue list --json の出力に合わせている
type Issue struct {
	Number    int        `json:"number"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	State     string     `json:"state"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	ClosedAt  *time.Time `json:"closedAt"`
	Author    Actor      `json:"author"`
	Assignees []Actor    `json:"assignees"`
	Labels    []Label    `json:"labels"`
	Milestone *Milestone `json:"milestone"`
	Comments  []Comment  `json:"comments"`

	// Raw はバックエンドが返した元のJSON。空でなければ保存時にこちらを使う
	Raw json.RawMessage `json:"-"`
}

// Actor はIssueの作成者や担当者
type Actor struct {
	ID    string `json:"id,omitempty"`
	Login string `json:"login"`
	Name  string `json:"name,omitempty"`
	IsBot bool   `json:"is_bot"`
}

// Label はIssueのラベル
type Label struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// Milestone はIssueのマイルストーン
type Milestone struct {
	Number      int        `json:"number"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueOn       *time.Time `json:"dueOn"`
}

// Comment はIssueのコメント
type Comment struct {
	ID                string    `json:"id"`
	Author            Actor     `json:"author"`
	AuthorAssociation string    `json:"authorAssociation"`
	Body              string    `json:"body"`
	CreatedAt         time.Time `json:"createdAt"`
	URL               string    `json:"url"`
}

// IssueFields は gh issue list --json に渡すフィールド一覧
const IssueFields = "number,title,body,state,createdAt,updatedAt,closedAt,author,assignees,labels,milestone,comments"
