package notehq_test

import (
	"context"
	"fmt"

	notehq "github.com/notehq/notehq.go"
	"github.com/notehq/notehq.go/internal/fakeapi"
	"github.com/notehq/notehq.go/pkg/filter"
	"github.com/notehq/notehq.go/pkg/logger"
	"github.com/notehq/notehq.go/pkg/models"
)

func ExampleClient_Query() {
	srv := fakeapi.NewServer()
	srv.Add(models.KindPage, "p-1", models.RootParent(), map[string]any{"title": "Roadmap", "status": "done"})
	srv.Add(models.KindPage, "p-2", models.RootParent(), map[string]any{"title": "Backlog", "status": "open"})

	conf := notehq.NewConfig(srv)
	conf.Logger = logger.Nop{}
	c, err := notehq.New(conf)
	if err != nil {
		panic(err)
	}

	c.SetSchema(models.KindPage, filter.Schema{
		"title":  filter.TypeTitle,
		"status": filter.TypeSelect,
	})

	pages, err := c.Query(models.KindPage, map[string]any{
		"status__eq": "done",
	}).Collect(context.Background())
	if err != nil {
		panic(err)
	}

	// The fake honors only the parent_id filter, so assert on the
	// translated payload that reached the wire instead.
	fmt.Printf("pages fetched: %d\n", len(pages))
	fmt.Printf("filter sent: %v\n", srv.LastPageRequest().Filter)

	// Output:
	// pages fetched: 2
	// filter sent: map[and:[map[property:status select:map[equals:done]]]]
}

func ExampleClient_Descendants() {
	srv := fakeapi.NewServer()
	srv.Add(models.KindPage, "p-root", models.RootParent(), map[string]any{"title": "Root"})
	srv.Add(models.KindBlock, "b-1", models.PageParent("p-root"), map[string]any{"title": "Intro"})
	srv.Add(models.KindBlock, "b-2", models.BlockParent("b-1"), map[string]any{"title": "Detail"})

	conf := notehq.NewConfig(srv)
	conf.Logger = logger.Nop{}
	c, err := notehq.New(conf)
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	root, err := c.Page(ctx, "p-root")
	if err != nil {
		panic(err)
	}

	err = c.Descendants(root, 0).ForEach(ctx, func(ent *models.Entity) error {
		fmt.Printf("%s %s\n", ent.Kind, ent.ID)
		return nil
	})
	if err != nil {
		panic(err)
	}

	// Output:
	// block b-1
	// block b-2
}
