package main

import (
	"context"
	"flag"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ayanda4rbn/khasinomvp-sub000/internal/config"
	"github.com/ayanda4rbn/khasinomvp-sub000/internal/logger"
	"github.com/ayanda4rbn/khasinomvp-sub000/internal/sound"
	"github.com/ayanda4rbn/khasinomvp-sub000/internal/storage"
	"github.com/ayanda4rbn/khasinomvp-sub000/internal/ui"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	name := flag.String("name", "", "访客昵称")
	mute := flag.Bool("mute", false, "关闭音效")
	flag.Parse()

	// 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("加载配置文件失败，使用默认配置: %v", err)
		cfg = config.Default()
	}

	if err := logger.Init(); err != nil {
		log.Printf("初始化日志失败: %v", err)
	}
	defer logger.Close()
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
			panic(r)
		}
	}()

	opts := []ui.Option{}

	// 访客档案
	if cfg.Redis.Enabled {
		ctx := context.Background()
		rdb, err := storage.Connect(ctx, cfg.Redis)
		if err != nil {
			logger.LogError("%v, 不保存访客档案", err)
		} else {
			defer func() { _ = rdb.Close() }()
			store := storage.NewRedisStore(rdb)
			opts = append(opts, ui.WithStore(store))

			if *name == "" {
				saved, err := store.LoadGuestName(ctx, cfg.Player.ProfileKey)
				if err != nil {
					logger.LogError("读取访客昵称失败: %v", err)
				}
				*name = saved
			}
		}
	} else if *name == "" {
		*name = cfg.Player.DefaultName
	}
	if *name != "" {
		opts = append(opts, ui.WithPlayerName(*name))
	}

	// 音效
	if cfg.Sound.Enabled && !*mute {
		sm := sound.NewSoundManager(cfg.Sound.Dir)
		if err := sm.Init(); err != nil {
			logger.LogError("初始化音效失败: %v", err)
		} else {
			opts = append(opts, ui.WithSound(sm))
		}
	}

	model := ui.New(cfg, opts...)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("启动游戏时出错: %v", err)
	}
}
