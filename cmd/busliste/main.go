// busliste 班车报名的管理命令行
//
//	busliste --config busliste.yaml drive add "2022-12-14 20:00"
//	busliste registration date "2022-12-14 20:00"
//
// 配置文件可选，所有配置项都可以用 BUSLISTE_ 前缀的环境变量覆盖。
package main

import (
	"context"
	"fmt"
	"io"
	"os"
)

func main() {
	if err := execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root, cleanup := newRootCmd()
	defer cleanup()

	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}
