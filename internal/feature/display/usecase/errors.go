package usecase

import "errors"

var (
	// ErrFetchFailed は会社一覧の取得に失敗した場合のエラーです。
	ErrFetchFailed = errors.New("failed to fetch companies")
	// ErrSubscribeFailed はライブ購読を開始できなかった場合のエラーです。
	ErrSubscribeFailed = errors.New("failed to subscribe to companies")
)
