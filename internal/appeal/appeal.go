// Package appeal は受理されたIssueをMarkdownのアピール文書に変換する
package appeal

import (
	"encoding/json"
	"errors"
	"fmt"
)

// DefaultUntitled はタイトルが無いIssueに使うプレースホルダ
const DefaultUntitled = "Untitled"

// Source はアピール文書の元になるIssueの項目
// タイトルと本文以外のメタデータは変換時に捨てられる
type Source struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Decode はIssueのJSONからタイトルと本文を取り出す
// JSONのnullはIssueとして扱えないためエラーにする
func Decode(data []byte) (Source, error) {
	var src *Source
	if err := json.Unmarshal(data, &src); err != nil {
		return Source{}, fmt.Errorf("failed to parse issue JSON: %w", err)
	}
	if src == nil {
		return Source{}, errors.New("failed to parse issue JSON: value is null")
	}
	return *src, nil
}

// Render はアピール文書を作成する
// 本文が空でも見出しの後の空行は残す
func Render(src Source, untitled string) string {
	title := src.Title
	if title == "" {
		title = untitled
	}
	return "# " + title + "\n\n" + src.Body
}
