package worldart_test

import (
	"testing"

	"github.com/fwojciec/worldart"
	"github.com/stretchr/testify/assert"
)

func TestCleanTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"Стальной алхимик [2003]", "Стальной алхимик"},
		{"Ван-Пис [ТВ]", "Ван-Пис"},
		{"Гинтама [ТВ-2]", "Гинтама"},
		{"Мобильный воин Гандам OVA", "Мобильный воин Гандам"},
		{"Детектив Конан (фильм седьмой) [2003]", "Детектив Конан"},
		{"  Акира  ", "Акира"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, worldart.CleanTitle(tt.in))
		})
	}
}

func TestCleanName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Fullmetal Alchemist", worldart.CleanName("Fullmetal Alchemist (1)"))
	assert.Equal(t, "Hagane no Renkinjutsushi", worldart.CleanName(" Hagane no Renkinjutsushi "))
}
