package db

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// errConflict 唯一索引插入未生效或者条件更新没有命中
// 只在事务内部使用, 事务回滚后由调用方重新读取当前状态
var errConflict = errors.New("engagement conflict")

const (
	colViews       = "views"
	colLikes       = "likes"
	colDislikes    = "dislikes"
	colSubscribers = "subscribers"
)

func incrExpr(col string) clause.Expr {
	return gorm.Expr(col+" + ?", 1)
}

// decrExpr 计数器在0处截断
func decrExpr(col string) clause.Expr {
	return gorm.Expr("CASE WHEN " + col + " > 0 THEN " + col + " - 1 ELSE 0 END")
}

// adjustCounters 在同一条UPDATE中修改计数
// 截断到0时行不会变化, MySQL 返回的 RowsAffected 为0, 所以只有包含自增的更新才检查行数
// 自增没有命中说明行已经不存在, 返回 gorm.ErrRecordNotFound 让整个事务回滚
func adjustCounters(tx *gorm.DB, table, keyCol string, key int64, updates map[string]interface{}, grows bool) error {
	res := tx.Table(table).Where(keyCol+" = ?", key).UpdateColumns(updates)
	if res.Error != nil {
		return errors.Wrapf(res.Error, "adjust %s counters key=%d", table, key)
	}
	if grows && res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func adjustVideo(tx *gorm.DB, videoId int64, updates map[string]interface{}) error {
	return adjustCounters(tx, "videos", "video_id", videoId, updates, false)
}

// growVideo 用于至少有一个计数自增的修改
func growVideo(tx *gorm.DB, videoId int64, updates map[string]interface{}) error {
	return adjustCounters(tx, "videos", "video_id", videoId, updates, true)
}

func adjustUser(tx *gorm.DB, userId int64, updates map[string]interface{}) error {
	return adjustCounters(tx, "users", "user_id", userId, updates, false)
}

func growUser(tx *gorm.DB, userId int64, updates map[string]interface{}) error {
	return adjustCounters(tx, "users", "user_id", userId, updates, true)
}

// insertIgnore 并发重复插入时返回 errConflict
func insertIgnore(tx *gorm.DB, record interface{}) error {
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(record)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return errConflict
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errConflict
	}
	return nil
}

// guarded 条件删除或更新没有命中时返回 errConflict
func guarded(res *gorm.DB) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errConflict
	}
	return nil
}
