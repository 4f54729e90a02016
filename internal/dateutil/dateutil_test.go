package dateutil

import "testing"

func TestTruncateToDay(t *testing.T) {
	tests := []struct {
		in   int64
		want int64
	}{
		{1704067199, 1703980800}, // 2023-12-31 23:59:59
		{1704067200, 1704067200}, // 2024-01-01 00:00:00
		{1704067201, 1704067200},
		{0, 0},
	}
	for _, tt := range tests {
		if got := TruncateToDay(tt.in); got != tt.want {
			t.Errorf("TruncateToDay(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestIsNextDay(t *testing.T) {
	if !IsNextDay(1703980800, 1704067200) {
		t.Error("2023-12-31 -> 2024-01-01 should be consecutive")
	}
	if IsNextDay(1703980800, 1704153600) {
		t.Error("2023-12-31 -> 2024-01-02 should not be consecutive")
	}
}

func TestUnixToYYYYMMDD(t *testing.T) {
	tests := []struct {
		in   int64
		want uint32
	}{
		{1704067199, 20231231},
		{1704067200, 20240101},
		{951782400, 20000229}, // leap day
	}
	for _, tt := range tests {
		if got := UnixToYYYYMMDD(tt.in); got != tt.want {
			t.Errorf("UnixToYYYYMMDD(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestYYYYMMDDRoundTrip(t *testing.T) {
	for _, date := range []uint32{20231231, 20240101, 20240229, 20241231} {
		unix := YYYYMMDDToUnix(date)
		if got := UnixToYYYYMMDD(unix); got != date {
			t.Errorf("round trip %d -> %d -> %d", date, unix, got)
		}
	}
}

func TestNextPrevYYYYMMDD(t *testing.T) {
	tests := []struct {
		date uint32
		next uint32
	}{
		{20231231, 20240101}, // year boundary
		{20240228, 20240229}, // leap year
		{20230228, 20230301}, // non-leap year
		{20240630, 20240701},
	}
	for _, tt := range tests {
		if got := NextYYYYMMDD(tt.date); got != tt.next {
			t.Errorf("NextYYYYMMDD(%d) = %d, want %d", tt.date, got, tt.next)
		}
		if got := PrevYYYYMMDD(tt.next); got != tt.date {
			t.Errorf("PrevYYYYMMDD(%d) = %d, want %d", tt.next, got, tt.date)
		}
	}
}

func TestDayWindow(t *testing.T) {
	start, end := DayWindow(20240101)
	if start != 1704067200 {
		t.Errorf("start = %d, want 1704067200", start)
	}
	if end != 1704067200+86399 {
		t.Errorf("end = %d, want %d", end, 1704067200+86399)
	}
}

func TestSplitYYYYMMDD(t *testing.T) {
	yyyy, mmdd := SplitYYYYMMDD(20240105)
	if yyyy != "2024" || mmdd != "0105" {
		t.Errorf("SplitYYYYMMDD(20240105) = %q, %q", yyyy, mmdd)
	}
}
