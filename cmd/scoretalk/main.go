// Command scoretalk is a terminal client for the ScoreTalk ratings-and-
// discussion service. It is a thin shell over the client SDK: each subcommand
// issues at most one request and renders the result; all state lives in the
// session store and the remote service.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/scoretalk/scoretalk-client/internal/client"
	"github.com/scoretalk/scoretalk-client/internal/core/domain"
	"github.com/scoretalk/scoretalk-client/internal/core/ports"
	"github.com/scoretalk/scoretalk-client/internal/pkg/config"
	"github.com/scoretalk/scoretalk-client/internal/session"
	"github.com/scoretalk/scoretalk-client/internal/storage"
	"github.com/scoretalk/scoretalk-client/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	ctx := context.Background()

	tokens, err := newTokenStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("token store init failed")
	}

	api := client.New(cfg.BaseURL, tokens, log)
	sess := session.NewStore(api, tokens, log)
	if err := sess.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("session restore failed")
	}

	if cfg.MetricsAddr != "" {
		go serveMetrics(cfg.MetricsAddr, log)
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	a := &app{api: api, sess: sess}
	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newTokenStore(ctx context.Context, cfg *config.Config) (ports.TokenStore, error) {
	switch cfg.Token.Backend {
	case "redis":
		rdb, err := storage.Connect(ctx, storage.RedisConfig{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return nil, err
		}
		return storage.NewRedisStore(rdb), nil
	case "file", "":
		path, err := cfg.TokenFilePath()
		if err != nil {
			return nil, err
		}
		return storage.NewFileStore(path)
	default:
		return nil, fmt.Errorf("unknown token backend %q", cfg.Token.Backend)
	}
}

func serveMetrics(addr string, log zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Error().Err(err).Msg("metrics listener failed")
	}
}

type app struct {
	api  *client.Client
	sess *session.Store
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "register":
		return a.cmdRegister(ctx, args)
	case "login":
		return a.cmdLogin(ctx, args)
	case "logout":
		return a.sess.Logout(ctx)
	case "whoami":
		return a.cmdWhoami(args)
	case "topics":
		return a.cmdTopics(ctx, args)
	case "rate":
		return a.cmdRate(ctx, args)
	case "ratings":
		return a.cmdRatings(ctx, args)
	case "posts":
		return a.cmdPosts(ctx, args)
	case "comments":
		return a.cmdComments(ctx, args)
	case "users":
		return a.cmdUsers(ctx, args)
	case "help", "-h", "--help":
		usage()
		return nil
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) cmdRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	username := fs.String("u", "", "username")
	nickname := fs.String("n", "", "nickname")
	password := fs.String("p", "", "password")
	_ = fs.Parse(args)

	if err := a.sess.Register(ctx, *username, *nickname, *password); err != nil {
		return err
	}
	a.sess.Wait()
	fmt.Printf("registered and logged in as %s\n", *username)
	return nil
}

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	username := fs.String("u", "", "username")
	password := fs.String("p", "", "password")
	_ = fs.Parse(args)

	if err := a.sess.Login(ctx, *username, *password); err != nil {
		return err
	}
	a.sess.Wait()
	if !a.sess.IsAuthenticated() {
		return errors.New("login succeeded but the session could not be established")
	}
	fmt.Printf("logged in as %s\n", *username)
	return nil
}

func (a *app) cmdWhoami(args []string) error {
	fs := flag.NewFlagSet("whoami", flag.ExitOnError)
	asJSON := fs.Bool("json", false, "print raw JSON")
	_ = fs.Parse(args)

	a.sess.Wait()
	user := a.sess.User()
	if user == nil {
		fmt.Println("not logged in")
		return nil
	}
	if *asJSON {
		return printJSON(user)
	}
	fmt.Printf("#%d %s (%s) role=%s\n", user.UserID, user.Username, user.Nickname, user.Role)
	if exp, ok := a.sess.TokenExpiry(); ok {
		fmt.Printf("token expires %s\n", exp.Local().Format(time.RFC1123))
	}
	return nil
}

func (a *app) cmdTopics(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{"list"}
	}
	sub, rest := args[0], args[1:]
	switch sub {
	case "list":
		fs := flag.NewFlagSet("topics list", flag.ExitOnError)
		p := pageFlags(fs)
		_ = fs.Parse(rest)
		page, err := a.api.ListTopics(ctx, *p)
		if err != nil {
			return err
		}
		for _, t := range page.Items {
			fmt.Printf("#%-4d %-30s %s\n", t.TopicID, t.Name, t.Description)
		}
		printPageFooter(page.Page, page.TotalPages, page.Total)
		return nil
	case "get":
		fs := flag.NewFlagSet("topics get", flag.ExitOnError)
		id := fs.Int("id", 0, "topic id")
		_ = fs.Parse(rest)
		topic, err := a.api.GetTopic(ctx, *id)
		if err != nil {
			return err
		}
		return printJSON(topic)
	case "create":
		fs := flag.NewFlagSet("topics create", flag.ExitOnError)
		name := fs.String("name", "", "topic name")
		desc := fs.String("desc", "", "description")
		_ = fs.Parse(rest)
		topic, err := a.api.CreateTopic(ctx, *name, *desc)
		if err != nil {
			return err
		}
		fmt.Printf("created topic #%d %s\n", topic.TopicID, topic.Name)
		return nil
	case "delete":
		fs := flag.NewFlagSet("topics delete", flag.ExitOnError)
		id := fs.Int("id", 0, "topic id")
		_ = fs.Parse(rest)
		if err := a.api.DeleteTopic(ctx, *id); err != nil {
			return err
		}
		fmt.Printf("deleted topic #%d\n", *id)
		return nil
	case "stats":
		fs := flag.NewFlagSet("topics stats", flag.ExitOnError)
		id := fs.Int("id", 0, "topic id")
		_ = fs.Parse(rest)
		stats, err := a.api.TopicStats(ctx, *id)
		if err != nil {
			return err
		}
		if stats.AvgScore == nil {
			fmt.Printf("topic #%d: no ratings yet\n", stats.TopicID)
		} else {
			fmt.Printf("topic #%d: %.2f average over %d ratings\n", stats.TopicID, *stats.AvgScore, stats.RatingCount)
		}
		return nil
	default:
		return fmt.Errorf("unknown topics subcommand %q", sub)
	}
}

func (a *app) cmdRate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("rate", flag.ExitOnError)
	topicID := fs.Int("topic", 0, "topic id")
	score := fs.Int("score", 0, "score 1-5")
	comment := fs.String("comment", "", "optional comment")
	_ = fs.Parse(args)

	rating, err := a.api.RateTopic(ctx, *topicID, *score, *comment)
	if err != nil {
		return err
	}
	fmt.Printf("rated topic #%d with %d\n", rating.TopicID, rating.Score)
	return nil
}

func (a *app) cmdRatings(ctx context.Context, args []string) error {
	if len(args) > 0 && args[0] == "delete" {
		fs := flag.NewFlagSet("ratings delete", flag.ExitOnError)
		topicID := fs.Int("topic", 0, "topic id")
		id := fs.Int("id", 0, "rating id")
		_ = fs.Parse(args[1:])
		if err := a.api.DeleteRating(ctx, *topicID, *id); err != nil {
			return err
		}
		fmt.Printf("deleted rating #%d\n", *id)
		return nil
	}

	fs := flag.NewFlagSet("ratings", flag.ExitOnError)
	topicID := fs.Int("topic", 0, "topic id")
	p := pageFlags(fs)
	_ = fs.Parse(args)

	page, err := a.api.ListRatings(ctx, *topicID, *p)
	if err != nil {
		return err
	}
	for _, r := range page.Items {
		fmt.Printf("#%-4d user=%-4d score=%d %s\n", r.RatingID, r.UserID, r.Score, r.Comment)
	}
	printPageFooter(page.Page, page.TotalPages, page.Total)
	return nil
}

func (a *app) cmdPosts(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{"list"}
	}
	sub, rest := args[0], args[1:]
	switch sub {
	case "list":
		fs := flag.NewFlagSet("posts list", flag.ExitOnError)
		p := pageFlags(fs)
		_ = fs.Parse(rest)
		page, err := a.api.ListPosts(ctx, *p)
		if err != nil {
			return err
		}
		for _, post := range page.Items {
			fmt.Printf("#%-4d %-40s by user %d\n", post.PostID, post.Title, post.AuthorID)
		}
		printPageFooter(page.Page, page.TotalPages, page.Total)
		return nil
	case "get":
		fs := flag.NewFlagSet("posts get", flag.ExitOnError)
		id := fs.Int("id", 0, "post id")
		_ = fs.Parse(rest)
		post, err := a.api.GetPost(ctx, *id)
		if err != nil {
			return err
		}
		return printJSON(post)
	case "create":
		fs := flag.NewFlagSet("posts create", flag.ExitOnError)
		title := fs.String("title", "", "post title")
		content := fs.String("content", "", "post body")
		_ = fs.Parse(rest)
		post, err := a.api.CreatePost(ctx, *title, *content)
		if err != nil {
			return err
		}
		fmt.Printf("created post #%d\n", post.PostID)
		return nil
	case "delete":
		fs := flag.NewFlagSet("posts delete", flag.ExitOnError)
		id := fs.Int("id", 0, "post id")
		_ = fs.Parse(rest)
		if err := a.api.DeletePost(ctx, *id); err != nil {
			return err
		}
		fmt.Printf("deleted post #%d\n", *id)
		return nil
	default:
		return fmt.Errorf("unknown posts subcommand %q", sub)
	}
}

func (a *app) cmdComments(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{"list"}
	}
	sub, rest := args[0], args[1:]
	switch sub {
	case "list":
		fs := flag.NewFlagSet("comments list", flag.ExitOnError)
		postID := fs.Int("post", 0, "post id")
		p := pageFlags(fs)
		_ = fs.Parse(rest)
		page, err := a.api.ListComments(ctx, *postID, *p)
		if err != nil {
			return err
		}
		for _, cmt := range page.Items {
			fmt.Printf("#%-4d user=%-4d %s\n", cmt.CommentID, cmt.AuthorID, cmt.Content)
		}
		printPageFooter(page.Page, page.TotalPages, page.Total)
		return nil
	case "create":
		fs := flag.NewFlagSet("comments create", flag.ExitOnError)
		postID := fs.Int("post", 0, "post id")
		content := fs.String("content", "", "comment body")
		_ = fs.Parse(rest)
		cmt, err := a.api.CreateComment(ctx, *postID, *content)
		if err != nil {
			return err
		}
		fmt.Printf("created comment #%d\n", cmt.CommentID)
		return nil
	case "delete":
		fs := flag.NewFlagSet("comments delete", flag.ExitOnError)
		postID := fs.Int("post", 0, "post id")
		id := fs.Int("id", 0, "comment id")
		_ = fs.Parse(rest)
		if err := a.api.DeleteComment(ctx, *postID, *id); err != nil {
			return err
		}
		fmt.Printf("deleted comment #%d\n", *id)
		return nil
	default:
		return fmt.Errorf("unknown comments subcommand %q", sub)
	}
}

func (a *app) cmdUsers(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("users", flag.ExitOnError)
	p := pageFlags(fs)
	_ = fs.Parse(args)

	page, err := a.api.ListUsers(ctx, *p)
	if err != nil {
		return err
	}
	for _, u := range page.Items {
		fmt.Printf("#%-4d %-20s %-20s %s\n", u.UserID, u.Username, u.Nickname, u.Role)
	}
	printPageFooter(page.Page, page.TotalPages, page.Total)
	return nil
}

func pageFlags(fs *flag.FlagSet) *domain.PageParams {
	p := &domain.PageParams{}
	fs.IntVar(&p.Page, "page", 0, "page number (1-based)")
	fs.IntVar(&p.PerPage, "per-page", 0, "items per page (max 100)")
	return p
}

func printPageFooter(page, totalPages, total int) {
	if totalPages > 1 {
		fmt.Printf("page %d/%d, %d total\n", page, totalPages, total)
	}
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func usage() {
	fmt.Fprint(os.Stderr, `usage: scoretalk <command> [flags]

  register  -u <user> -n <nick> -p <pass>   create an account and log in
  login     -u <user> -p <pass>             exchange credentials for a session
  logout                                    drop the session
  whoami    [-json]                         show the current profile

  topics    list|get|create|delete|stats    browse and manage topics
  rate      -topic <id> -score <1-5>        rate a topic
  ratings   [-topic <id>] | delete          list or delete ratings
  posts     list|get|create|delete          browse and manage posts
  comments  list|create|delete              browse and manage comments
  users                                     list accounts (admin)

Configuration via environment (or .env): SCORETALK_BASE_URL,
SCORETALK_TOKEN_BACKEND (file|redis), SCORETALK_TOKEN_FILE, REDIS_ADDR,
LOG_LEVEL, METRICS_ADDR.
`)
}
