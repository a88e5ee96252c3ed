package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/studysprint/internal/bot"
	"github.com/example/studysprint/internal/database"
	"github.com/example/studysprint/internal/progress"
	"github.com/joho/godotenv"
)

func main() {
	// .env опционален: в продакшене переменные приходят из окружения
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Создаем канал для сигналов
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Подключаемся к базе данных
	if err := database.Connect(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Гарантируем, что локальный пользователь и его настройки существуют
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	userRepo := database.NewUserRepository()
	if err := userRepo.EnsureLocalUser(ctx, progress.Today("UTC")); err != nil {
		cancel()
		log.Fatalf("Failed to ensure local user: %v", err)
	}
	cancel()

	b, err := bot.New()
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	// Канал для ожидания завершения
	done := make(chan struct{})

	// Горутина для обработки сигналов
	go func() {
		sig := <-sigChan
		log.Printf("Received signal: %v\n", sig)
		b.Stop()
		close(done)
	}()

	log.Println("StudySprint bot started. Press Ctrl+C to stop.")
	go func() {
		if err := b.Start(); err != nil {
			log.Fatalf("Bot error: %v", err)
		}
	}()

	<-done
	log.Println("Bot stopped successfully")
}
