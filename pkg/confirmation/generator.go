package confirmation

import (
	"math/rand"
	"strings"
	"sync"
	"time"
)

// Length длина кода подтверждения
const Length = 6

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Generator выдает коды подтверждения из переданного источника случайности
// Безопасен для конкурентного использования
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewGenerator создает генератор на заданном источнике
// В тестах передается rand.New(rand.NewSource(seed))
func NewGenerator(rnd *rand.Rand) *Generator {
	return &Generator{rnd: rnd}
}

// NewDefaultGenerator создает генератор, засеянный текущим временем
func NewDefaultGenerator() *Generator {
	return NewGenerator(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// Next возвращает новый код из Length символов [A-Z0-9]
func (g *Generator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	var b strings.Builder
	b.Grow(Length)
	for i := 0; i < Length; i++ {
		b.WriteByte(alphabet[g.rnd.Intn(len(alphabet))])
	}
	return b.String()
}

// IsValid проверяет формат кода (без учета регистра)
func IsValid(code string) bool {
	if len(code) != Length {
		return false
	}
	for _, c := range strings.ToUpper(code) {
		if !strings.ContainsRune(alphabet, c) {
			return false
		}
	}
	return true
}
