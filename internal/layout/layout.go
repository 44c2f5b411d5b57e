// Package layout は週グリッド上のイベント配置計算を提供する。
//
// 1日分のイベント集合から、各イベントのピクセル位置（top/height）と
// パーセント幅のカラム配置（left/width）を計算し、時間帯が重なる
// イベント同士をクリッピングなしで横並びに表示できるようにする。
// 計算は純粋関数で、入力集合や表示ウィンドウが変わるたびに
// 呼び出し側が再計算する（結果のキャッシュは行わない）。
package layout

import (
	"sort"
	"time"

	"github.com/hitoshi/recruitdesk/internal/localtime"
	"github.com/hitoshi/recruitdesk/internal/model"
)

// Config はグリッドのレイアウト定数を保持する。
type Config struct {
	HourHeight float64 // 1時間あたりのピクセル高
	FirstHour  int     // 表示開始時（0-23）
	LastHour   int     // 表示終了時（排他的）
}

// Annotation は1イベント分の描画位置。永続化されない派生データ。
type Annotation struct {
	Top    float64 // px
	Height float64 // px
	Left   float64 // percent
	Width  float64 // percent
}

// Placed はレイアウト済みのイベント。
type Placed struct {
	Event      model.CalendarEvent
	Annotation Annotation
}

// cluster は開いている重なりクラスタ。スイープ中の最大終了分数を保持する。
type cluster struct {
	maxEnd  int
	members []int // placed内のインデックス
}

// Compute は1描画日分のイベントにレイアウト注釈を付与する。
//
// アルゴリズム:
//  1. 各イベントの開始・終了をローカル壁時計の分数に変換し、
//     ローカル開始が [FirstHour*60, LastHour*60) の外のものは除外する。
//  2. top/heightを時間比例のピクセル値として算出する。ゼロ・負の
//     所要時間でも値は算出する（退行入力の回避は呼び出し側の責務）。
//  3. 開始時刻昇順の安定ソートでスイープし、開いているクラスタを
//     順に走査して「クラスタの最大終了 > イベント開始」となる最初の
//     クラスタに合流する。該当がなければ新しいクラスタを開く。
//     直接重ならない2イベントも第3のイベントを介して同一クラスタに
//     なりうる（推移的グルーピング。意図した簡略化で、変更しない）。
//  4. クラスタ内で合流順にカラム番号iを割り当て、width=100/n、
//     left=i*width とする。
//
// 開始・終了が欠けたイベントは除外するだけで、バッチ全体は失敗しない。
func Compute(events []model.CalendarEvent, loc *time.Location, cfg Config) []Placed {
	windowStart := cfg.FirstHour * 60
	windowEnd := cfg.LastHour * 60

	// 表示ウィンドウ内のイベントだけを位置計算の対象にする
	var placed []Placed
	for _, ev := range events {
		if ev.StartAt.IsZero() || ev.EndAt.IsZero() {
			continue
		}
		startMin := localtime.MinutesOfDay(ev.StartAt, loc)
		if startMin < windowStart || startMin >= windowEnd {
			continue
		}
		endMin := localtime.MinutesOfDay(ev.EndAt, loc)

		placed = append(placed, Placed{
			Event: ev,
			Annotation: Annotation{
				Top:    float64(startMin-windowStart) / 60.0 * cfg.HourHeight,
				Height: float64(endMin-startMin) / 60.0 * cfg.HourHeight,
			},
		})
	}

	// 開始時刻昇順。同時刻は入力順を維持する（上流に第2キーがないため）。
	sort.SliceStable(placed, func(i, j int) bool {
		return placed[i].Event.StartAt.Before(placed[j].Event.StartAt)
	})

	// 左から右への単一スイープで重なりクラスタに分割する
	var clusters []*cluster
	for i := range placed {
		startMin := localtime.MinutesOfDay(placed[i].Event.StartAt, loc)
		endMin := localtime.MinutesOfDay(placed[i].Event.EndAt, loc)

		var joined *cluster
		for _, c := range clusters {
			if c.maxEnd > startMin {
				joined = c
				break
			}
		}
		if joined == nil {
			joined = &cluster{maxEnd: endMin}
			clusters = append(clusters, joined)
		} else if endMin > joined.maxEnd {
			joined.maxEnd = endMin
		}
		joined.members = append(joined.members, i)
	}

	// クラスタ内で等幅カラムを割り当てる
	for _, c := range clusters {
		width := 100.0 / float64(len(c.members))
		for col, idx := range c.members {
			placed[idx].Annotation.Width = width
			placed[idx].Annotation.Left = float64(col) * width
		}
	}

	return placed
}
