// Package localtime は絶対時刻とローカル壁時計表現の相互変換を提供する。
//
// ルールは1つ:「保存は絶対時刻、表示はローカル時刻」。
// ストアとネットワーク伝送はすべて絶対時刻（time.Time / RFC3339）を使い、
// 週グリッドや日付ピッカー等のUI構成にのみローカル表現を使う。
package localtime

import "time"

// LocalDateTime はビューワーのタイムゾーンにおける壁時計表現。
// 分単位までを扱う（イベントグリッドの最小単位）。
type LocalDateTime struct {
	Year   int
	Month  time.Month
	Day    int
	Hour   int
	Minute int
}

// ToAbsolute はローカル壁時計表現を絶対時刻に変換する。
// 同じタイムゾーンで同じ壁時計値を渡せば常に同じ絶対時刻を返す
// （決定的、隠れた状態を持たない）。
func ToAbsolute(ld LocalDateTime, loc *time.Location) time.Time {
	return time.Date(ld.Year, ld.Month, ld.Day, ld.Hour, ld.Minute, 0, 0, loc)
}

// ToLocal は絶対時刻をビューワーのタイムゾーンの壁時計表現に変換する。
// ToAbsoluteとの往復で壁時計フィールドが保存される。
func ToLocal(t time.Time, loc *time.Location) LocalDateTime {
	lt := t.In(loc)
	return LocalDateTime{
		Year:   lt.Year(),
		Month:  lt.Month(),
		Day:    lt.Day(),
		Hour:   lt.Hour(),
		Minute: lt.Minute(),
	}
}

// Combine は別々に入力された日付と時刻を1つの絶対時刻に合成する。
// 日付側のカレンダーフィールドと時刻側の時計フィールドを取り、
// locで正規化する。文字列連結による合成は行わない。
func Combine(datePart, timePart time.Time, loc *time.Location) time.Time {
	d := datePart.In(loc)
	t := timePart.In(loc)
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, loc)
}

// MinutesOfDay は絶対時刻のローカル表現における0時からの経過分数を返す。
func MinutesOfDay(t time.Time, loc *time.Location) int {
	lt := t.In(loc)
	return lt.Hour()*60 + lt.Minute()
}

// SameLocalDay は2つの絶対時刻がlocにおいて同じ暦日かを判定する。
func SameLocalDay(a, b time.Time, loc *time.Location) bool {
	la, lb := a.In(loc), b.In(loc)
	return la.Year() == lb.Year() && la.Month() == lb.Month() && la.Day() == lb.Day()
}
