package i18n

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestT(t *testing.T) {
	if got := T(LocaleZH, "submission.success"); got != "信息提交成功！感谢您的配合。" {
		t.Fatalf("unexpected zh message: %s", got)
	}
	if got := T("en", "error.not_image"); got != "Only image files can be uploaded" {
		t.Fatalf("unexpected en message: %s", got)
	}
	if got := T(LocaleEN, "missing.key"); got != "missing.key" {
		t.Fatalf("missing key should fall back to key, got %s", got)
	}
	if got := Sprintf(LocaleZH, "error.too_many_images", 3); got != "最多只能上传3张图片" {
		t.Fatalf("unexpected formatted message: %s", got)
	}
}

func TestResolveLocale(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		url    string
		header string
		want   string
	}{
		{"/", "", LocaleZH},
		{"/", "en-US,en;q=0.9", LocaleEN},
		{"/", "zh-HK;q=0.8", LocaleTW},
		{"/?lang=en", "zh-CN", LocaleEN},
		{"/", "fr-FR", LocaleZH},
	}
	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", tc.url, nil)
		if tc.header != "" {
			c.Request.Header.Set("Accept-Language", tc.header)
		}
		if got := ResolveLocale(c); got != tc.want {
			t.Fatalf("%s %q want %s got %s", tc.url, tc.header, tc.want, got)
		}
	}
	if ResolveLocale(nil) != DefaultLocale {
		t.Fatalf("nil context should resolve to default locale")
	}
}
