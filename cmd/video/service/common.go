package service

import (
	"VidHub.com/pkg/constants"
	"VidHub.com/pkg/errno"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

func notFound(err error, target errno.ErrNo) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return target
	}
	return err
}

// normalizeLimit 限制单页数量
func normalizeLimit(limit int) int {
	if limit <= 0 {
		return constants.DefaultLimit
	}
	if limit > constants.MaxLimit {
		return constants.MaxLimit
	}
	return limit
}
