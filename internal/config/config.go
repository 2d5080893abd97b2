package config

import (
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfighcl"
)

// Конфиг читается из hcl файла и переменных окружения (с префиксом APD_).
// Флаги командной строки разбирает cobra, поэтому aconfig их не трогает.
type Config struct {
	// Снапшот обновлений, из которого строится дашборд
	DataFile string `hcl:"data_file" env:"DATA_FILE" default:"./data/updates.json"`
	// Список отслеживаемых лент
	FeedsFile string `hcl:"feeds_file" env:"FEEDS_FILE" default:"./data/feeds.json"`

	OutputDir       string `hcl:"output_dir" env:"OUTPUT_DIR" default:"./public"`
	BasePath        string `hcl:"base_path" env:"BASE_PATH" default:"/"`
	ListenAddr      string `hcl:"listen_addr" env:"LISTEN_ADDR" default:":8080"`
	SiteTitle       string `hcl:"site_title" env:"SITE_TITLE" default:"Ad Platform Updates"`
	SiteTagline     string `hcl:"site_tagline" env:"SITE_TAGLINE" default:"Daily Design & Tech Updates • Automated"`
	SiteDescription string `hcl:"site_description" env:"SITE_DESCRIPTION" default:"Daily updates from major advertising platforms."`

	// Насколько старые статьи еще считаются свежими при сборе
	CollectWindow      time.Duration `hcl:"collect_window" env:"COLLECT_WINDOW" default:"48h"`
	CollectConcurrency int           `hcl:"collect_concurrency" env:"COLLECT_CONCURRENCY" default:"4"`
	FetchTimeout       time.Duration `hcl:"fetch_timeout" env:"FETCH_TIMEOUT" default:"30s"`
	FilterKeywords     []string      `hcl:"filter_keywords" env:"FILTER_KEYWORDS"`

	OpenAIKey   string `hcl:"openai_key" env:"OPENAI_KEY"`
	OpenAIModel string `hcl:"openai_model" env:"OPENAI_MODEL" default:"gpt-4o-mini"`

	TelegramBotToken  string        `hcl:"telegram_bot_token" env:"TELEGRAM_BOT_TOKEN"`
	TelegramChannelID int64         `hcl:"telegram_channel_id" env:"TELEGRAM_CHANNEL_ID"`
	AnnounceInterval  time.Duration `hcl:"announce_interval" env:"ANNOUNCE_INTERVAL" default:"3s"`
}

// Файлы, в которых ищем конфиг. Локальный перекрывает основной.
var DefaultFiles = []string{"./config.hcl", "./config.local.hcl"}

// Load читает конфиг из указанных файлов и окружения.
// Отсутствующие файлы пропускаются, переменные окружения перекрывают файлы.
func Load(files ...string) (Config, error) {
	var c Config

	loader := aconfig.LoaderFor(&c, aconfig.Config{
		EnvPrefix:  "APD",
		SkipFlags:  true,
		MergeFiles: true,
		Files:      files,
		FileDecoders: map[string]aconfig.FileDecoder{
			".hcl": aconfighcl.New(),
		},
	})

	if err := loader.Load(); err != nil {
		return c, err
	}

	return c, nil
}
