package main

import (
	"log"
	"os"

	"github.com/tlwa/courseadmin/core"
	"github.com/tlwa/courseadmin/core/card"
	"github.com/tlwa/courseadmin/core/course"
	"github.com/tlwa/courseadmin/core/member"
	"github.com/tlwa/courseadmin/core/news"
	"github.com/tlwa/courseadmin/core/order"
	"github.com/tlwa/courseadmin/core/speaker"
	"github.com/tlwa/courseadmin/core/video"
	"github.com/tlwa/courseadmin/restapi"
	logsvc "github.com/tlwa/courseadmin/services/logger"
	"github.com/tlwa/courseadmin/session"
)

func main() {
	defer os.Exit(0)

	std := log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	var logger core.Logger
	if core.Conf.GetBool("debug") {
		logger = core.NewConsoleLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std)
	}

	tokens := session.NewStore("", logger)
	client, err := restapi.NewClient(&restapi.Options{
		Tokens: tokens,
		Logger: logger,
	})
	if err != nil {
		std.Fatal(err)
	}

	cli := commandLine{
		out:        os.Stdout,
		client:     client,
		tokens:     tokens,
		courseSvc:  course.NewService(client),
		cardSvc:    card.NewService(client),
		speakerSvc: speaker.NewService(client),
		newsSvc:    news.NewService(client),
		videoSvc:   video.NewService(client),
		orderSvc:   order.NewService(client),
		memberSvc:  member.NewService(client),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			std.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
