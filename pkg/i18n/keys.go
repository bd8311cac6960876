package i18n

// Message keys shared by every language.
const (
	AppTitle          = "appTitle"
	Subtitle          = "subtitle"
	ConfigTitle       = "configTitle"
	APIKeyLabel       = "apiKeyLabel"
	APIKeyPlaceholder = "apiKeyPlaceholder"
	NamespaceLabel    = "namespaceLabel"
	NamespaceHint     = "namespacePlaceholder"
	TagLabel          = "tagLabel"
	TagPlaceholder    = "tagPlaceholder"
	FetchButton       = "fetchBtn"
	EmptyState        = "emptyState"
	Loading           = "loading"
	JustNow           = "justNow"
	MinsAgo           = "minsAgo"
	HoursAgo          = "hoursAgo"
	DaysAgo           = "daysAgo"
	UnknownSize       = "unknownSize"
	UnknownSender     = "unknownSender"
	NoPreview         = "noPreview"
	ErrMissingConfig  = "errorMissingConfig"
	ErrFetch          = "errorFetch"
	NoEmailsFound     = "noEmailsFound"
	SuccessFetch      = "successFetch"
	NetworkError      = "networkError"
	Total             = "total"
	Current           = "current"
	Offset            = "offset"
	ErrorLabel        = "errorLabel"
	NoSubject         = "noSubject"
	SenderLabel       = "senderLabel"
	RecipientLabel    = "recipientLabel"
	TimeLabel         = "timeLabel"
	TagInfoLabel      = "tagLabelInfo"
	Unknown           = "unknown"
	CopyText          = "copyText"
	CopyHTML          = "copyHtml"
	HTMLView          = "htmlView"
	TextView          = "textView"
	NoContent         = "noContent"
	Attachments       = "attachments"
	Unnamed           = "unnamed"
	NoContentCopy     = "noContentCopy"
	Copied            = "copied"
	ExportEML         = "exportEml"
	FetchInProgress   = "fetchInProgress"
	SanitizerFailed   = "sanitizerFailed"
	ThemeLight        = "themeLight"
	ThemeDark         = "themeDark"
	SettingsSaved     = "settingsSaved"
	CopyFailed        = "copyFailed"
	LangButton        = "langBtn"
	ThemeButton       = "themeBtn"
	Live              = "live"
)
