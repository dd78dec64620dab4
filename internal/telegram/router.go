package telegram

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"gradewise/internal/handle"
	"gradewise/internal/llm"
)

// Router drives the grading pipeline from chat: plain text and file
// uploads come in, PDF reports go back.
type Router struct {
	Bot        *tgbotapi.BotAPI
	H          *handle.Handle
	EngManager *llm.Manager
	Log        *zap.Logger
}

func (r *Router) HandleUpdate(upd tgbotapi.Update) {
	if upd.Message == nil {
		return
	}
	cid := upd.Message.Chat.ID

	if upd.Message.IsCommand() {
		r.handleCommand(upd)
		return
	}
	if len(upd.Message.Photo) > 0 {
		// Largest preview carries the most legible text.
		ph := upd.Message.Photo[len(upd.Message.Photo)-1]
		r.gradeFileID(cid, ph.FileID)
		return
	}
	if upd.Message.Document != nil {
		r.gradeFileID(cid, upd.Message.Document.FileID)
		return
	}
	if text := strings.TrimSpace(upd.Message.Text); text != "" {
		r.gradeText(cid, text)
		return
	}
}

func (r *Router) handleCommand(upd tgbotapi.Update) {
	cid := upd.Message.Chat.ID
	switch upd.Message.Command() {
	case "start", "help":
		r.send(cid, "Send a student submission as text, a photo, or a PDF and I will reply with a graded PDF report.\n"+
			"Commands:\n/engine [name] - show or switch the LLM engine (gpt | gemini | claude)")
	case "engine":
		args := strings.Fields(strings.TrimSpace(strings.TrimPrefix(upd.Message.Text, "/engine")))
		if len(args) == 0 {
			r.send(cid, "Current engine: "+r.EngManager.Get(cid).Name()+
				"\nUsage: /engine gpt | gemini | claude")
			return
		}
		name := strings.ToLower(args[0])
		eng, err := r.H.Chain.Engines().Get(name)
		if err != nil {
			r.send(cid, "Unknown engine. Available: gpt | gemini | claude")
			return
		}
		r.EngManager.Set(cid, eng)
		r.send(cid, "Engine switched to "+name)
	default:
		r.send(cid, "Unknown command. Try /help")
	}
}

func (r *Router) gradeText(cid int64, text string) {
	r.send(cid, "Got it, grading...")
	ctx, cancel := context.WithTimeout(context.Background(), 180*time.Second)
	defer cancel()

	res, err := r.H.GradeSubmission(ctx, handle.GradeRequest{
		Submission: text,
		LLMName:    r.EngManager.Get(cid).Name(),
	})
	if err != nil {
		r.Log.Warn("bot grade failed", zap.Int64("chat", cid), zap.Error(err))
		r.send(cid, "Grading failed: "+err.Error())
		return
	}
	r.replyWithReport(cid, res)
}

func (r *Router) gradeFileID(cid int64, fileID string) {
	r.send(cid, "Got the file, grading...")
	ctx, cancel := context.WithTimeout(context.Background(), 180*time.Second)
	defer cancel()

	data, mime, err := r.download(ctx, fileID)
	if err != nil {
		r.Log.Warn("bot download failed", zap.Int64("chat", cid), zap.Error(err))
		r.send(cid, "Could not download the file: "+err.Error())
		return
	}

	res, err := r.H.GradeUpload(ctx, handle.GradeRequest{
		LLMName: r.EngManager.Get(cid).Name(),
	}, data, mime)
	if err != nil {
		r.Log.Warn("bot grade file failed", zap.Int64("chat", cid), zap.Error(err))
		r.send(cid, "Grading failed: "+err.Error())
		return
	}
	r.replyWithReport(cid, res)
}

// replyWithReport sends the finished PDF back as a document plus a
// short summary line.
func (r *Router) replyWithReport(cid int64, res *handle.GradeResult) {
	rc, err := r.H.Gen.Store.Open(context.Background(), res.Filename)
	if err != nil {
		r.send(cid, "Report ready: "+res.PDFURL)
		return
	}
	defer rc.Close()

	pdf, err := io.ReadAll(rc)
	if err != nil {
		r.send(cid, "Report ready: "+res.PDFURL)
		return
	}

	doc := tgbotapi.NewDocument(cid, tgbotapi.FileBytes{Name: res.Filename, Bytes: pdf})
	doc.Caption = fmt.Sprintf("Subject: %s (engine: %s)", res.Subject, res.Engine)
	if _, err := r.Bot.Send(doc); err != nil {
		r.Log.Warn("bot send document failed", zap.Int64("chat", cid), zap.Error(err))
		r.send(cid, "Report ready: "+res.PDFURL)
	}
}

func (r *Router) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	_, _ = r.Bot.Send(msg)
}
