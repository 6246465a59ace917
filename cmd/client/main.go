package main

import (
	"flag"
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shattle/shattle-server/internal/auth"
	"github.com/shattle/shattle-server/internal/client"
	"github.com/shattle/shattle-server/internal/ui"
)

func main() {
	serverAddr := flag.String("server", "localhost:8080", "服务器地址")
	userID := flag.String("user", "", "用户 ID")
	token := flag.String("token", "", "access_token（为空时用 -key 本地签发）")
	tokenKey := flag.String("key", "shattle-dev-key", "本地签发 token 的密钥（开发用）")
	flag.Parse()

	if *userID == "" {
		log.Fatal("必须指定 -user")
	}

	accessToken := *token
	if accessToken == "" {
		var err error
		accessToken, err = auth.IssueToken(*tokenKey, *userID)
		if err != nil {
			log.Fatalf("签发 token 失败: %v", err)
		}
	}

	serverURL := fmt.Sprintf("ws://%s/ws", *serverAddr)
	c := client.NewClient(serverURL, accessToken)
	if err := c.Connect(); err != nil {
		log.Fatalf("连接服务器失败: %v", err)
	}

	model := ui.NewModel(c, *userID)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("启动客户端时出错: %v", err)
	}
}
