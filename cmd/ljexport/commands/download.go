package commands

import (
	"context"
	"log/slog"
	"os"
	"time"

	"ljexport/cmd/ljexport/utils"
	"ljexport/lib/archive"
	"ljexport/lib/archive/exporters"
	"ljexport/lib/configutil"
	"ljexport/lib/scrapers/lj/comments"
	"ljexport/lib/scrapers/lj/core"
	"ljexport/lib/scrapers/lj/inbox"
	"ljexport/lib/scrapers/lj/posts"
	"ljexport/lib/scrapers/lj/profile"
	"ljexport/lib/util/restyutil"
	"ljexport/lib/util/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// Config mirrors ljexport.json5; command-line flags override it.
type Config struct {
	Username      string   `json:"username"`
	Password      string   `json:"password"`
	BaseUrl       string   `json:"base_url"`
	UserAgent     string   `json:"user_agent"`
	RequestDelay  float64  `json:"request_delay"`
	RetryAttempts int      `json:"retry_attempts"`
	Timeout       float64  `json:"timeout"`
	Output        string   `json:"output"`
	InboxFolders  []string `json:"inbox_folders"`
}

var (
	downloadUsername   *string
	downloadPassword   *string
	downloadOutput     *string
	downloadNoPosts    *bool
	downloadNoComments *bool
	downloadNoInbox    *bool
	downloadStartYear  *int
	downloadStartMonth *int
	downloadEndYear    *int
	downloadEndMonth   *int
	downloadDebugHttp  *bool
)

func init() {
	downloadUsername = downloadCmd.Flags().String("username", "", "LiveJournal username.")
	downloadPassword = downloadCmd.Flags().String("password", "", "LiveJournal password.")
	downloadOutput = downloadCmd.Flags().String("output", "", "Output file path; extension selects yaml/json/xml.")
	downloadNoPosts = downloadCmd.Flags().Bool("no-posts", false, "Skip downloading posts.")
	downloadNoComments = downloadCmd.Flags().Bool("no-comments", false, "Skip downloading comments.")
	downloadNoInbox = downloadCmd.Flags().Bool("no-inbox", false, "Skip downloading inbox messages.")
	downloadStartYear = downloadCmd.Flags().Int("start-year", 0, "Start year for posts.")
	downloadStartMonth = downloadCmd.Flags().Int("start-month", 0, "Start month for posts (1-12).")
	downloadEndYear = downloadCmd.Flags().Int("end-year", 0, "End year for posts.")
	downloadEndMonth = downloadCmd.Flags().Int("end-month", 0, "End month for posts (1-12).")
	downloadDebugHttp = downloadCmd.Flags().Bool("debug-http", false, "Record raw HTTP exchanges to .dev/resty/ljexport.")
	rootCmd.AddCommand(downloadCmd)
}

func readConfig() Config {
	cfg, err := configutil.ReadConfig[Config]("ljexport.json5")
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}
		}
		serviceutil.Fatal("failed to read config", err)
	}
	return cfg
}

func createClient(ctx context.Context, cfg Config) *core.Client {
	username := cfg.Username
	if *downloadUsername != "" {
		username = *downloadUsername
	}
	password := cfg.Password
	if *downloadPassword != "" {
		password = *downloadPassword
	}
	if username == "" || password == "" {
		slog.Error("username and password are required, pass them as flags or put them in ljexport.json5")
		os.Exit(1)
	}

	if *downloadDebugHttp {
		core.SetDebugOutput(restyutil.NewFilesystemOutput(".dev/resty/ljexport"))
	}

	client, err := core.NewClient(ctx, core.ClientOptions{
		Username:      username,
		BaseUrl:       cfg.BaseUrl,
		UserAgent:     cfg.UserAgent,
		RequestDelay:  time.Duration(cfg.RequestDelay * float64(time.Second)),
		RetryAttempts: cfg.RetryAttempts,
		Timeout:       time.Duration(cfg.Timeout * float64(time.Second)),
	})
	if err != nil {
		serviceutil.Fatal("failed to initialize client", err)
	}
	err = client.Login(ctx, password)
	if err != nil {
		serviceutil.Fatal("authentication failed", err)
	}
	return client
}

// postRange resolves the month range for the posts download: explicit
// flags win, everything else comes from the profile page.
func postRange(ctx context.Context, profileClient *profile.Client) (int, int, int, int, int) {
	explicit := *downloadStartYear != 0 && *downloadStartMonth != 0 &&
		*downloadEndYear != 0 && *downloadEndMonth != 0
	if explicit {
		return *downloadStartYear, *downloadStartMonth, *downloadEndYear, *downloadEndMonth, -1
	}

	info, err := profileClient.Download(ctx)
	if err != nil {
		serviceutil.Fatal("failed to discover post date range from profile", err)
	}
	startYear, startMonth := info.CreatedYear, info.CreatedMonth
	endYear, endMonth := info.UpdatedYear, info.UpdatedMonth
	if *downloadStartYear != 0 && *downloadStartMonth != 0 {
		startYear, startMonth = *downloadStartYear, *downloadStartMonth
	}
	if *downloadEndYear != 0 && *downloadEndMonth != 0 {
		endYear, endMonth = *downloadEndYear, *downloadEndMonth
	}
	return startYear, startMonth, endYear, endMonth, info.PostCount
}

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Downloads posts, comments and inbox messages into one archive file.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		cfg := readConfig()

		client := createClient(ctx, cfg)
		slog.Info("logged in", "username", client.Username)

		export := archive.New(client.Username, time.Now())

		if !*downloadNoPosts {
			startYear, startMonth, endYear, endMonth, expected := postRange(ctx, profile.NewClient(client))
			slog.Info("downloading posts",
				"from", posts.Month{Year: startYear, Month: startMonth},
				"to", posts.Month{Year: endYear, Month: endMonth})

			downloaded, err := posts.NewClient(client).DownloadAll(ctx, startYear, startMonth, endYear, endMonth)
			if err != nil {
				serviceutil.Fatal("failed to download posts", err)
			}
			if expected >= 0 && len(downloaded) != expected {
				slog.Warn("downloaded post count differs from profile",
					"downloaded", len(downloaded), "profile", expected)
			}
			export.Posts = downloaded
		}

		if !*downloadNoComments {
			slog.Info("downloading comments")
			downloaded, usermap, err := comments.NewClient(client).DownloadAll(ctx)
			if err != nil {
				serviceutil.Fatal("failed to download comments", err)
			}
			export.Comments = downloaded
			export.Usermap = usermap
		}

		if !*downloadNoInbox {
			slog.Info("downloading inbox")
			downloaded, err := inbox.NewClient(client).DownloadAll(ctx, cfg.InboxFolders)
			if err != nil {
				serviceutil.Fatal("failed to download inbox", err)
			}
			export.Inbox = downloaded
		}

		for _, finding := range archive.Validate(export) {
			slog.Warn("archive consistency check", "finding", finding)
		}

		output := cfg.Output
		if *downloadOutput != "" {
			output = *downloadOutput
		}
		if output == "" {
			output = "lj-backup.yaml"
		}
		format, err := exporters.DetectFormat(output)
		if err != nil {
			serviceutil.Fatal("failed to pick output format", err)
		}
		err = exporters.Save(export, output, format)
		if err != nil {
			serviceutil.Fatal("failed to write archive", err)
		}

		for security, count := range archive.SecurityBreakdown(export.Posts) {
			slog.Info("post security level", "security", security, "count", count)
		}

		t := utils.NewTable()
		t.AppendHeader(table.Row{"content", "count"})
		t.AppendRow(table.Row{"posts", len(export.Posts)})
		t.AppendRow(table.Row{"comments", len(export.Comments)})
		t.AppendRow(table.Row{"usermap", len(export.Usermap)})
		t.AppendRow(table.Row{"inbox", len(export.Inbox)})
		t.AppendFooter(table.Row{"output", output})
		t.Render()
	},
}
