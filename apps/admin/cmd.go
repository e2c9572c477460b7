package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"syscall"

	"golang.org/x/term"

	"github.com/tlwa/courseadmin/core/card"
	"github.com/tlwa/courseadmin/core/course"
	"github.com/tlwa/courseadmin/core/member"
	"github.com/tlwa/courseadmin/core/news"
	"github.com/tlwa/courseadmin/core/order"
	"github.com/tlwa/courseadmin/core/speaker"
	"github.com/tlwa/courseadmin/core/video"
	"github.com/tlwa/courseadmin/restapi"
	"github.com/tlwa/courseadmin/session"
	"github.com/tlwa/courseadmin/staging"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	out io.Writer

	client     *restapi.Client
	tokens     *session.Store
	courseSvc  *course.Service
	cardSvc    *card.Service
	speakerSvc *speaker.Service
	newsSvc    *news.Service
	videoSvc   *video.Service
	orderSvc   *order.Service
	memberSvc  *member.Service
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  list (courses|cards|speakers|news|videos|orders) [-search TERM] - list a resource")
	fmt.Fprintln(cli.out, "  users [-q TERM] [-tab all|member|normal] [-page N] [-size N]    - list accounts")
	fmt.Fprintln(cli.out, "  upload -file PATH                                               - upload one image, print its URL")
	fmt.Fprintln(cli.out, "  token [-clear]                                                  - store (or forget) the API token")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	ctx := context.Background()

	switch args[1] {
	case "list":
		listCmd := flag.NewFlagSet("list", flag.ContinueOnError)
		listSearch := listCmd.String("search", "", "Case-insensitive substring filter applied to the fetched list.")
		if err := listCmd.Parse(args[2:]); err != nil {
			return err
		}
		if listCmd.NArg() == 0 {
			cli.printUsage()
			return errHelp
		}
		return cli.list(ctx, listCmd.Arg(0), *listSearch)

	case "users":
		usersCmd := flag.NewFlagSet("users", flag.ContinueOnError)
		usersQ := usersCmd.String("q", "", "Search term.")
		usersTab := usersCmd.String("tab", member.TabAll, "all, member or normal.")
		usersPage := usersCmd.Int("page", 1, "Page number.")
		usersSize := usersCmd.Int("size", 20, "Page size.")
		if err := usersCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.users(ctx, *usersQ, *usersTab, *usersPage, *usersSize)

	case "upload":
		uploadCmd := flag.NewFlagSet("upload", flag.ContinueOnError)
		uploadFile := uploadCmd.String("file", "", "Path of the image to upload.")
		if err := uploadCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *uploadFile == "" {
			uploadCmd.Usage()
			return errHelp
		}
		return cli.upload(ctx, *uploadFile)

	case "token":
		tokenCmd := flag.NewFlagSet("token", flag.ContinueOnError)
		tokenClear := tokenCmd.Bool("clear", false, "Forget the stored token.")
		if err := tokenCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *tokenClear {
			return cli.tokens.Clear()
		}
		fmt.Fprint(cli.out, "Enter token:")
		token, err := readPasswordFunc(syscall.Stdin)
		fmt.Fprintln(cli.out)
		if err != nil {
			return err
		}
		if len(token) == 0 {
			tokenCmd.Usage()
			return errHelp
		}
		return cli.tokens.Save(string(token))

	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) upload(ctx context.Context, path string) error {
	f, err := staging.NewLocalFile(path)
	if err != nil {
		return err
	}
	url, err := cli.client.Upload(ctx, f)
	if err != nil {
		return err
	}
	fmt.Fprintln(cli.out, url)
	return nil
}
