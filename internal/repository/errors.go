package repository

import "errors"

// 見つかりませんを全リポジトリで統一
var ErrNotFound = errors.New("not found")
