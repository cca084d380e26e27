// Package smuseum embeds the artwork lookup pipeline in a Go program without
// running the HTTP server.
//
//	client, _ := smuseum.New(ctx)
//	defer client.Close()
//	res, err := client.Lookup(ctx, "Quail", "Kiyohara Yukinobu")
//	if err == nil && res.Found {
//	    fmt.Println(res.Link)
//	}
//
// Records are snapshotted in memory unless WithRedis is given.
package smuseum
