package i18n

var translations = map[Lang]map[string]string{
	Chinese: {
		AppTitle:          "Testmail Viewer",
		Subtitle:          "邮件可视化工具",
		ConfigTitle:       "API 配置",
		APIKeyLabel:       "API Key",
		APIKeyPlaceholder: "输入你的 Testmail API Key",
		NamespaceLabel:    "Namespace",
		NamespaceHint:     "输入你的 Namespace",
		TagLabel:          "Tag (可选)",
		TagPlaceholder:    "筛选特定标签",
		FetchButton:       "获取邮件",
		EmptyState:        "请先配置 API 并获取邮件",
		Loading:           "加载中...",
		JustNow:           "刚刚",
		MinsAgo:           "%d 分钟前",
		HoursAgo:          "%d 小时前",
		DaysAgo:           "%d 天前",
		UnknownSize:       "未知",
		UnknownSender:     "未知发件人",
		NoPreview:         "(无预览)",
		ErrMissingConfig:  "请填写 API Key 和 Namespace",
		ErrFetch:          "获取邮件失败",
		NoEmailsFound:     "没有找到邮件",
		SuccessFetch:      "成功获取 %d 封邮件",
		NetworkError:      "请求失败，请检查网络",
		Total:             "总数",
		Current:           "当前",
		Offset:            "Offset",
		ErrorLabel:        "错误",
		NoSubject:         "(无主题)",
		SenderLabel:       "发件人",
		RecipientLabel:    "收件人",
		TimeLabel:         "时间",
		TagInfoLabel:      "标签",
		Unknown:           "未知",
		CopyText:          "复制文本",
		CopyHTML:          "复制HTML",
		HTMLView:          "HTML 视图",
		TextView:          "纯文本",
		NoContent:         "邮件没有内容",
		Attachments:       "附件",
		Unnamed:           "未命名",
		NoContentCopy:     "没有可复制的内容",
		Copied:            "已复制到剪贴板",
		ExportEML:         "导出 EML",
		FetchInProgress:   "正在获取邮件，请稍候",
		SanitizerFailed:   "HTML 内容无法安全显示",
		ThemeLight:        "浅色",
		ThemeDark:         "深色",
		SettingsSaved:     "配置已保存",
		CopyFailed:        "复制失败",
		LangButton:        "English",
		ThemeButton:       "主题",
		Live:              "自动刷新",
	},
	English: {
		AppTitle:          "Testmail Viewer",
		Subtitle:          "Email Visualization Tool",
		ConfigTitle:       "API Configuration",
		APIKeyLabel:       "API Key",
		APIKeyPlaceholder: "Enter your Testmail API Key",
		NamespaceLabel:    "Namespace",
		NamespaceHint:     "Enter your Namespace",
		TagLabel:          "Tag (Optional)",
		TagPlaceholder:    "Filter by specific tag",
		FetchButton:       "Fetch Emails",
		EmptyState:        "Please configure API and fetch emails",
		Loading:           "Loading...",
		JustNow:           "just now",
		MinsAgo:           "%d mins ago",
		HoursAgo:          "%d hours ago",
		DaysAgo:           "%d days ago",
		UnknownSize:       "unknown",
		UnknownSender:     "Unknown Sender",
		NoPreview:         "(No Preview)",
		ErrMissingConfig:  "Please enter API Key and Namespace",
		ErrFetch:          "Failed to fetch emails",
		NoEmailsFound:     "No emails found",
		SuccessFetch:      "Successfully fetched %d emails",
		NetworkError:      "Request failed, check network",
		Total:             "Total",
		Current:           "Current",
		Offset:            "Offset",
		ErrorLabel:        "Error",
		NoSubject:         "(No Subject)",
		SenderLabel:       "Sender",
		RecipientLabel:    "Recipient",
		TimeLabel:         "Time",
		TagInfoLabel:      "Tag",
		Unknown:           "Unknown",
		CopyText:          "Copy Text",
		CopyHTML:          "Copy HTML",
		HTMLView:          "HTML View",
		TextView:          "Plain Text",
		NoContent:         "Email has no content",
		Attachments:       "Attachments",
		Unnamed:           "Unnamed",
		NoContentCopy:     "No content to copy",
		Copied:            "Copied to clipboard",
		ExportEML:         "Export EML",
		FetchInProgress:   "A fetch is already running",
		SanitizerFailed:   "HTML content could not be displayed safely",
		ThemeLight:        "Light",
		ThemeDark:         "Dark",
		SettingsSaved:     "Settings saved",
		CopyFailed:        "Copy failed",
		LangButton:        "中文",
		ThemeButton:       "Theme",
		Live:              "Auto refresh",
	},
}
