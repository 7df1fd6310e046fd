// Package docker starts temporary ClickHouse servers for statement
// verification.
//
// `sqlign check --docker` uses a Container to obtain a DSN when no running
// server is configured. Each formatted statement is then sent through the
// verify package and explained by a real server.
//
// # Usage Example
//
//	container := docker.NewWithOptions(docker.DockerOptions{Version: "25.7"})
//	if err := container.Start(ctx); err != nil {
//		return err
//	}
//	defer container.Stop(ctx)
//
//	dsn, err := container.GetDSN(ctx)
//	if err != nil {
//		return err
//	}
//
//	client, err := verify.NewClient(ctx, dsn)
//
// Docker must be available on the host; tests that need it are skipped
// otherwise.
package docker
