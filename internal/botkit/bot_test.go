package botkit

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	sent []tgbotapi.MessageConfig
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c.(tgbotapi.MessageConfig))
	return tgbotapi.Message{}, nil
}

func (f *fakeAPI) GetChatAdministrators(tgbotapi.ChatAdministratorsConfig) ([]tgbotapi.ChatMember, error) {
	return nil, nil
}

type fakePoller struct {
	ch tgbotapi.UpdatesChannel
}

func (p fakePoller) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return p.ch
}

func command(text string) tgbotapi.Update {
	length := len(text)
	for i, r := range text {
		if r == ' ' {
			length = i
			break
		}
	}

	return tgbotapi.Update{Message: &tgbotapi.Message{
		Text:     text,
		Chat:     &tgbotapi.Chat{ID: 42},
		From:     &tgbotapi.User{ID: 7},
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: length}},
	}}
}

func TestBot_RoutesCommands(t *testing.T) {
	api := &fakeAPI{}
	b := &Bot{api: api}

	var got []string
	b.RegisterCmdView("updates", func(_ context.Context, _ API, update tgbotapi.Update) error {
		got = append(got, update.Message.CommandArguments())
		return nil
	})

	b.handleUpdate(context.Background(), command("/updates Meta"))
	b.handleUpdate(context.Background(), command("/unknown"))
	b.handleUpdate(context.Background(), tgbotapi.Update{Message: &tgbotapi.Message{Text: "hello", Chat: &tgbotapi.Chat{ID: 1}}})
	b.handleUpdate(context.Background(), tgbotapi.Update{})

	assert.Equal(t, []string{"Meta"}, got)
	assert.Empty(t, api.sent)
}

func TestBot_ViewErrorRepliesInternalError(t *testing.T) {
	api := &fakeAPI{}
	b := &Bot{api: api}
	b.RegisterCmdView("boom", func(context.Context, API, tgbotapi.Update) error {
		return errors.New("boom")
	})

	b.handleUpdate(context.Background(), command("/boom"))

	require.Len(t, api.sent, 1)
	assert.Equal(t, "internal error", api.sent[0].Text)
	assert.Equal(t, int64(42), api.sent[0].ChatID)
}

func TestBot_RecoversFromPanic(t *testing.T) {
	b := &Bot{api: &fakeAPI{}}
	b.RegisterCmdView("panic", func(context.Context, API, tgbotapi.Update) error {
		panic("oops")
	})

	assert.NotPanics(t, func() {
		b.handleUpdate(context.Background(), command("/panic"))
	})
}

func TestBot_RunStopsOnCancel(t *testing.T) {
	ch := make(chan tgbotapi.Update)
	b := &Bot{api: &fakeAPI{}, poller: fakePoller{ch: ch}}

	handled := make(chan struct{})
	b.RegisterCmdView("start", func(context.Context, API, tgbotapi.Update) error {
		close(handled)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- b.Run(ctx) }()

	ch <- command("/start")
	<-handled
	cancel()

	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestParseJSON(t *testing.T) {
	type args struct {
		Name string `json:"name"`
	}

	got, err := ParseJSON[args](` {"name": "Meta"} `)
	require.NoError(t, err)
	assert.Equal(t, "Meta", got.Name)

	_, err = ParseJSON[args]("")
	assert.ErrorIs(t, err, ErrEmptyArgs)

	_, err = ParseJSON[args]("{broken")
	assert.Error(t, err)
}
