package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"

	"github.com/tlwa/courseadmin/core/member"
	"github.com/tlwa/courseadmin/listview"
)

var errUnknownResource = errors.New("unknown resource")

// list fetches one collection and renders it; the search flag filters the
// in-memory rows the way the dashboard search box did.
func (cli *commandLine) list(ctx context.Context, name, search string) error {
	switch name {
	case "courses":
		courses, err := cli.courseSvc.List(ctx)
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(courses))
		for _, c := range courses {
			rows = append(rows, []string{
				strconv.Itoa(c.ID), c.Title, strconv.Itoa(c.TypeID), c.Location,
				c.RegistrationStart, c.RegistrationEnd,
			})
		}
		cli.render([]string{"ID", "Title", "Type", "Location", "Reg. start", "Reg. end"}, filterRows(rows, search))

	case "cards":
		cards, err := cli.cardSvc.List(ctx)
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(cards))
		for _, c := range cards {
			rows = append(rows, []string{
				strconv.Itoa(c.ID), strconv.Itoa(c.CourseID), c.Title, c.Location,
				strconv.Itoa(c.MaxParticipants.Int),
			})
		}
		cli.render([]string{"ID", "Course", "Title", "Location", "Max"}, filterRows(rows, search))

	case "speakers":
		speakers, err := cli.speakerSvc.List(ctx)
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(speakers))
		for _, s := range speakers {
			rows = append(rows, []string{strconv.Itoa(s.ID), strconv.Itoa(s.CourseID), s.Name})
		}
		cli.render([]string{"ID", "Course", "Name"}, filterRows(rows, search))

	case "news":
		items, err := cli.newsSvc.List(ctx)
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(items))
		for _, n := range items {
			title := n.TitleTH
			if n.Lang == "en" {
				title = n.TitleEN
			}
			rows = append(rows, []string{strconv.Itoa(n.ID), n.NewsType, n.Lang, title})
		}
		cli.render([]string{"ID", "Type", "Lang", "Title"}, filterRows(rows, search))

	case "videos":
		videos, err := cli.videoSvc.List(ctx)
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(videos))
		for _, v := range videos {
			rows = append(rows, []string{strconv.Itoa(v.ID), v.Title, v.YoutubeURL})
		}
		cli.render([]string{"ID", "Title", "URL"}, filterRows(rows, search))

	case "orders":
		orders, err := cli.orderSvc.List(ctx)
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(orders))
		for _, o := range orders {
			rows = append(rows, []string{
				strconv.Itoa(o.ID), strconv.Itoa(o.UserID), o.UserName,
				strconv.FormatFloat(o.TotalPrice, 'f', 2, 64), o.PaymentMethod,
			})
		}
		cli.render([]string{"ID", "User", "Name", "Total", "Payment"}, filterRows(rows, search))

	default:
		return errors.Wrap(errUnknownResource, name)
	}
	return nil
}

func (cli *commandLine) users(ctx context.Context, q, tab string, page, size int) error {
	paging := listview.NewPagination(size)
	paging.Page = page

	if tab == member.TabMember {
		res, err := cli.memberSvc.Members(ctx, member.QueryFilter{Search: q, Paging: paging})
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(res.Rows))
		for _, m := range res.Rows {
			rows = append(rows, []string{
				strconv.Itoa(m.ID), m.NickName.String, m.WorkPlace.String, m.PaymentStatus.String,
			})
		}
		cli.render([]string{"ID", "Nick", "Workplace", "Payment"}, rows)
		paging.Total = res.Total
		fmt.Fprintf(cli.out, "page %d/%d (%d total)\n", paging.Page, paging.PageCount(), paging.Total)
		return nil
	}

	res, err := cli.memberSvc.Users(ctx, member.QueryFilter{Search: q, Tab: tab, Paging: paging})
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(res.Rows))
	for _, u := range res.Rows {
		rows = append(rows, []string{
			strconv.Itoa(u.ID), u.FirstName + " " + u.LastName, u.Email, u.Phone.String,
		})
	}
	cli.render([]string{"ID", "Name", "Email", "Phone"}, rows)
	paging.Total = res.Total
	fmt.Fprintf(cli.out, "page %d/%d (%d total)\n", paging.Page, paging.PageCount(), paging.Total)
	return nil
}

func (cli *commandLine) render(headers []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(cli.out, "(no matching rows)")
		return
	}
	table := tablewriter.NewWriter(cli.out)
	table.SetHeader(headers)
	table.AppendBulk(rows)
	table.Render()
}

// filterRows is the CLI's stand-in for the search box: case-insensitive
// substring across all rendered cells.
func filterRows(rows [][]string, q string) [][]string {
	if q == "" {
		return rows
	}
	maps := make([]map[string]interface{}, len(rows))
	for i, row := range rows {
		m := make(map[string]interface{}, len(row))
		for j, cell := range row {
			m[strconv.Itoa(j)] = cell
		}
		maps[i] = m
	}
	fields := make([]string, 0)
	if len(rows) > 0 {
		for j := range rows[0] {
			fields = append(fields, strconv.Itoa(j))
		}
	}
	kept := listview.Filter(maps, fields, q)
	out := make([][]string, 0, len(kept))
	for _, m := range kept {
		row := make([]string, len(m))
		for j := range row {
			row[j], _ = m[strconv.Itoa(j)].(string)
		}
		out = append(out, row)
	}
	return out
}
