package mailview_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tmviewer/tmviewer/pkg/i18n"
	"github.com/tmviewer/tmviewer/pkg/mailview"
)

var en = i18n.NewPrinter(i18n.English)

func TestParseSender(t *testing.T) {
	tests := []struct {
		from      string
		wantName  string
		wantEmail string
	}{
		{`"Jane Doe" <jane@x.com>`, "Jane Doe", "jane@x.com"},
		{`jane@x.com`, "jane@x.com", "jane@x.com"},
		{`Jane Doe <jane@x.com>`, "Jane Doe", "jane@x.com"},
		{`'Jane' <jane@x.com>`, "Jane", "jane@x.com"},
		{`"" <jane@x.com>`, "jane@x.com", "jane@x.com"},
		{`<jane@x.com>`, "jane@x.com", "jane@x.com"},
		{`张三 <zhang@x.cn>`, "张三", "zhang@x.cn"},
		{``, "Unknown Sender", ""},
	}
	for _, tc := range tests {
		t.Run(tc.from, func(t *testing.T) {
			got := mailview.ParseSender(tc.from, en)
			assert.Equal(t, tc.wantName, got.Name)
			assert.Equal(t, tc.wantEmail, got.Email)
		})
	}
}

func TestAvatarGlyph(t *testing.T) {
	tests := []struct {
		from, want string
	}{
		{`"jane doe" <jane@x.com>`, "J"},
		{`bob@x.com`, "B"},
		{`张三 <zhang@x.cn>`, "张"},
		{`"élodie" <e@x.fr>`, "É"},
		{``, "?"},
	}
	for _, tc := range tests {
		t.Run(tc.from, func(t *testing.T) {
			assert.Equal(t, tc.want, mailview.AvatarGlyph(tc.from, en))
		})
	}
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "(No Preview)", mailview.Preview("", en))
	assert.Equal(t, "hello world", mailview.Preview("  hello\n\n\t world  ", en))

	long := strings.Repeat("a", 150)
	assert.Equal(t, strings.Repeat("a", 100), mailview.Preview(long, en))

	// Truncation happens before whitespace is collapsed.
	spaced := strings.Repeat(" ", 99) + "xyz"
	assert.Equal(t, "x", mailview.Preview(spaced, en))

	cjk := strings.Repeat("字", 120)
	assert.Equal(t, strings.Repeat("字", 100), mailview.Preview(cjk, en))
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2024, time.March, 20, 12, 0, 0, 0, time.UTC)
	ms := func(d time.Duration) int64 { return now.Add(-d).UnixMilli() }

	tests := []struct {
		name string
		ago  time.Duration
		want string
	}{
		{"30s", 30 * time.Second, "just now"},
		{"future", -5 * time.Minute, "just now"},
		{"1m", time.Minute, "1 mins ago"},
		{"59m", 59 * time.Minute, "59 mins ago"},
		{"90m", 90 * time.Minute, "1 hours ago"},
		{"23h", 23*time.Hour + 59*time.Minute, "23 hours ago"},
		{"1d", 25 * time.Hour, "1 days ago"},
		{"6d", 6*24*time.Hour + time.Hour, "6 days ago"},
		{"10d", 10 * 24 * time.Hour, "03/10, 12:00 PM"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, mailview.RelativeTime(ms(tc.ago), now, time.UTC, en))
		})
	}

	zh := i18n.NewPrinter(i18n.Chinese)
	assert.Equal(t, "刚刚", mailview.RelativeTime(ms(time.Second), now, time.UTC, zh))
	assert.Equal(t, "03/10 12:00", mailview.RelativeTime(ms(10*24*time.Hour), now, time.UTC, zh))
}

func TestFileSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "unknown"},
		{-1, "unknown"},
		{1, "1 B"},
		{500, "500 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{2048, "2.0 KB"},
		{1536, "1.5 KB"},
		{5_242_880, "5.0 MB"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, mailview.FileSize(tc.bytes, en), "bytes=%d", tc.bytes)
	}
}
