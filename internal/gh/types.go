package gh

// ghRepository はgh repo viewコマンドの出力を表す構造体
type ghRepository struct {
	Name  string  `json:"name"`
	Owner ghOwner `json:"owner"`
}

// ghOwner はリポジトリの所有者を表す
type ghOwner struct {
	Login string `json:"login"`
}
