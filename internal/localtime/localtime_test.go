package localtime

import (
	"testing"
	"time"
)

// TestToAbsolute_ToLocal_RoundTrip は壁時計表現が往復変換で保存されることを検証する。
func TestToAbsolute_ToLocal_RoundTrip(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}

	tests := []struct {
		name string
		ld   LocalDateTime
	}{
		{"平日の朝", LocalDateTime{2025, time.April, 14, 9, 30}},
		{"深夜0時", LocalDateTime{2025, time.January, 1, 0, 0}},
		{"23時59分", LocalDateTime{2025, time.December, 31, 23, 59}},
		{"うるう日", LocalDateTime{2024, time.February, 29, 12, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToLocal(ToAbsolute(tt.ld, loc), loc)
			if got != tt.ld {
				t.Errorf("round trip = %+v, want %+v", got, tt.ld)
			}
		})
	}
}

// TestToAbsolute_Deterministic は同じ入力から常に同じ絶対時刻が得られることを検証する。
func TestToAbsolute_Deterministic(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}

	ld := LocalDateTime{2025, time.June, 10, 14, 0}
	a := ToAbsolute(ld, loc)
	b := ToAbsolute(ld, loc)
	if !a.Equal(b) {
		t.Errorf("ToAbsolute is not deterministic: %v != %v", a, b)
	}
}

// TestToLocal_CrossTimezone は同一絶対時刻が各タイムゾーンの壁時計で表示されることを検証する。
func TestToLocal_CrossTimezone(t *testing.T) {
	tokyo, _ := time.LoadLocation("Asia/Tokyo")
	utc := time.UTC

	// UTC 2025-04-14 00:00 は東京では同日09:00
	instant := time.Date(2025, time.April, 14, 0, 0, 0, 0, utc)

	got := ToLocal(instant, tokyo)
	want := LocalDateTime{2025, time.April, 14, 9, 0}
	if got != want {
		t.Errorf("ToLocal(tokyo) = %+v, want %+v", got, want)
	}
}

// TestCombine は日付と時刻の別入力から正しく合成されることを検証する。
func TestCombine(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Tokyo")

	// 日付側: 2025-04-14（時刻は無関係な値を入れておく）
	datePart := time.Date(2025, time.April, 14, 23, 45, 0, 0, loc)
	// 時刻側: 10:30（日付は無関係な値）
	timePart := time.Date(1999, time.January, 2, 10, 30, 0, 0, loc)

	got := Combine(datePart, timePart, loc)
	want := time.Date(2025, time.April, 14, 10, 30, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("Combine = %v, want %v", got, want)
	}
}

// TestCombine_NormalizesSourceZones は異なるタイムゾーン由来の入力もlocで正規化されることを検証する。
func TestCombine_NormalizesSourceZones(t *testing.T) {
	tokyo, _ := time.LoadLocation("Asia/Tokyo")

	// UTCで与えた日付・時刻も東京の壁時計フィールドとして解釈される
	datePart := time.Date(2025, time.April, 13, 20, 0, 0, 0, time.UTC) // 東京では4/14 05:00
	timePart := time.Date(2025, time.April, 1, 1, 30, 0, 0, time.UTC)  // 東京では10:30

	got := Combine(datePart, timePart, tokyo)
	want := time.Date(2025, time.April, 14, 10, 30, 0, 0, tokyo)
	if !got.Equal(want) {
		t.Errorf("Combine = %v, want %v", got, want)
	}
}

// TestMinutesOfDay は0時からの経過分数の計算を検証する。
func TestMinutesOfDay(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Tokyo")

	tests := []struct {
		name string
		t    time.Time
		want int
	}{
		{"9時ちょうど", time.Date(2025, time.April, 14, 9, 0, 0, 0, loc), 540},
		{"9時30分", time.Date(2025, time.April, 14, 9, 30, 0, 0, loc), 570},
		{"0時", time.Date(2025, time.April, 14, 0, 0, 0, 0, loc), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MinutesOfDay(tt.t, loc); got != tt.want {
				t.Errorf("MinutesOfDay = %d, want %d", got, tt.want)
			}
		})
	}
}

// TestSameLocalDay はローカル暦日の一致判定を検証する。
func TestSameLocalDay(t *testing.T) {
	tokyo, _ := time.LoadLocation("Asia/Tokyo")

	// UTC 4/13 20:00 と UTC 4/14 10:00 は東京ではどちらも4/14
	a := time.Date(2025, time.April, 13, 20, 0, 0, 0, time.UTC)
	b := time.Date(2025, time.April, 14, 10, 0, 0, 0, time.UTC)

	if !SameLocalDay(a, b, tokyo) {
		t.Error("expected same local day in Asia/Tokyo")
	}
	if SameLocalDay(a, b, time.UTC) {
		t.Error("expected different local day in UTC")
	}
}
