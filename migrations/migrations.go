// Package migrations хранит SQL-схему сервиса и применяет её
package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
)

//go:embed *.sql
var files embed.FS

// Names возвращает имена файлов миграций в порядке применения
func Names() ([]string, error) {
	names, err := fs.Glob(files, "*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// Apply последовательно выполняет все миграции
// Скрипты идемпотентны (IF NOT EXISTS), повторный запуск безопасен
func Apply(ctx context.Context, db dbmetrics.DBExecutor) ([]string, error) {
	names, err := Names()
	if err != nil {
		return nil, fmt.Errorf("migrations: list files: %w", err)
	}

	for _, name := range names {
		body, err := files.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("migrations: read %s: %w", name, err)
		}
		if _, err := db.ExecContext(ctx, string(body)); err != nil {
			return nil, fmt.Errorf("migrations: apply %s: %w", name, err)
		}
	}

	return names, nil
}
