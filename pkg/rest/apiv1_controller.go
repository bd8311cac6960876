package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/tmviewer/tmviewer/pkg/i18n"
	"github.com/tmviewer/tmviewer/pkg/mailview"
	"github.com/tmviewer/tmviewer/pkg/rest/model"
	"github.com/tmviewer/tmviewer/pkg/server/web"
	"github.com/tmviewer/tmviewer/pkg/testmail"
	"github.com/tmviewer/tmviewer/pkg/viewer"
)

// EmailListV1 renders the current list as JSON.
func EmailListV1(w http.ResponseWriter, req *http.Request, ctx *web.Context) (err error) {
	snap := ctx.Session.Snapshot(viewer.SnapshotOptions{Fallback: ctx.Lang})
	list := &model.JSONEmailListV1{
		Stats: model.JSONStatsV1{
			Fetched: snap.Stats.Fetched,
			Count:   snap.Stats.Count,
			Offset:  snap.Stats.Offset,
			Limit:   snap.Stats.Limit,
			Current: snap.Stats.Current,
		},
		Error:    snap.Error,
		Fetching: snap.Fetching,
		Emails:   make([]*model.JSONEmailV1, 0, len(snap.Emails)),
	}
	for i, item := range snap.List.Items {
		list.Emails = append(list.Emails, jsonEmail(item, &snap.Emails[i], snap.Printer))
	}
	return web.RenderJSON(w, list)
}

// EmailShowV1 renders a single email, including its raw bodies, as JSON.
func EmailShowV1(w http.ResponseWriter, req *http.Request, ctx *web.Context) (err error) {
	index, err := strconv.Atoi(ctx.Vars["index"])
	if err != nil {
		http.Error(w, "Bad index", http.StatusBadRequest)
		return nil
	}
	snap := ctx.Session.Snapshot(viewer.SnapshotOptions{Fallback: ctx.Lang})
	if index < 0 || index >= len(snap.Emails) {
		http.NotFound(w, req)
		return nil
	}
	email := &snap.Emails[index]
	result := jsonEmail(snap.List.Items[index], email, snap.Printer)
	result.Text = email.Text
	result.HTML = email.HTML
	return web.RenderJSON(w, result)
}

// FetchV1 runs a fetch and reports its outcome.
func FetchV1(w http.ResponseWriter, req *http.Request, ctx *web.Context) (err error) {
	web.ExpFetchesTotal.Add(1)
	listed, err := ctx.Session.Fetch(req.Context())
	if err == nil {
		_, stats, _ := ctx.Session.State()
		return web.RenderJSON(w, &model.JSONFetchResultV1{
			Listed: listed,
			Count:  stats.Count,
			Offset: stats.Offset,
		})
	}

	status := http.StatusBadGateway
	switch {
	case errors.Is(err, viewer.ErrFetchInProgress):
		status = http.StatusConflict
	case errors.Is(err, testmail.ErrMissingCredentials):
		status = http.StatusBadRequest
	default:
		log.Debug().Str("module", "rest").Err(err).Msg("Fetch failed")
	}
	return web.RenderJSONStatus(w, status, &model.JSONFetchResultV1{
		Error: viewer.ErrorMessage(err, ctx.Printer()),
	})
}

func jsonEmail(item mailview.ItemView, email *testmail.Email, p *i18n.Printer) *model.JSONEmailV1 {
	attachments := make([]*model.JSONAttachmentV1, len(email.Attachments))
	for i, att := range email.Attachments {
		attachments[i] = &model.JSONAttachmentV1{
			Filename:     att.Filename,
			ContentType:  att.ContentType,
			Size:         att.Size,
			SizeText:     mailview.FileSize(att.Size, p),
			DownloadLink: att.DownloadURL,
		}
	}
	return &model.JSONEmailV1{
		Index:        item.Index,
		From:         email.From,
		SenderName:   item.SenderName,
		SenderEmail:  item.SenderEmail,
		Avatar:       item.Avatar,
		To:           email.To,
		Subject:      item.Subject,
		Preview:      item.Preview,
		RelativeTime: item.RelativeTime,
		Tag:          email.Tag,
		Date:         email.Time(),
		PosixMillis:  email.Timestamp,
		Expanded:     item.Expanded,
		HasText:      email.Text != "",
		HasHTML:      email.HTML != "",
		Attachments:  attachments,
	}
}
