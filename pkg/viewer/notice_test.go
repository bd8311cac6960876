package viewer

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tmviewer/tmviewer/pkg/i18n"
	"github.com/tmviewer/tmviewer/pkg/mailview"
	"github.com/tmviewer/tmviewer/pkg/testmail"
)

func TestErrorMessage(t *testing.T) {
	zh := i18n.NewPrinter(i18n.Chinese)
	testCases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{testmail.ErrMissingCredentials, "请填写 API Key 和 Namespace"},
		{ErrFetchInProgress, "正在获取邮件，请稍候"},
		{mailview.ErrNoContent, "没有可复制的内容"},
		{&testmail.APIError{Result: "fail", Message: "bad key"}, "bad key"},
		{&testmail.APIError{Result: "fail"}, "获取邮件失败"},
		{fmt.Errorf("wrapped: %w", &testmail.NetworkError{Err: errors.New("x")}), "请求失败，请检查网络"},
		{testmail.ErrMalformedResponse, "获取邮件失败"},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, ErrorMessage(tc.err, zh), "%v", tc.err)
	}
}

func TestNoticeMessage(t *testing.T) {
	en := i18n.NewPrinter(i18n.English)
	n := Notice{Kind: NoticeSuccess, Key: i18n.SuccessFetch, Args: []any{2}}
	assert.Equal(t, "Successfully fetched 2 emails", n.Message(en))

	n = Notice{Kind: NoticeError, Key: i18n.ErrFetch, Text: "server said no"}
	assert.Equal(t, "server said no", n.Message(en))
}
