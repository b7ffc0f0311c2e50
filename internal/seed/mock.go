// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/seed/mock.go
// Summary: Deterministic mock user profiles used when no seed file is given.

package seed

import (
	"fmt"
	"math/rand/v2"

	"github.com/framegrace/texeltable/internal/records"
)

var (
	maleFirst   = []string{"Александр", "Дмитрий", "Максим", "Сергей", "Андрей", "Алексей", "Артём", "Илья", "Кирилл", "Михаил"}
	femaleFirst = []string{"Анастасия", "Мария", "Анна", "Виктория", "Екатерина", "Наталья", "Марина", "Полина", "Софья", "Дарья"}
	lastNames   = []string{"Иванов", "Смирнов", "Кузнецов", "Попов", "Васильев", "Петров", "Соколов", "Михайлов", "Новиков", "Фёдоров"}
	stations    = []string{"Арбатская", "Сокол", "Тверская", "Китай-город", "Охотный Ряд", "Парк культуры", "Таганская", "Беговая", "Выхино", "Динамо"}
	streets     = []string{"ул. Ленина", "ул. Гагарина", "Ленинский пр-т", "ул. Тверская", "Кутузовский пр-т", "ул. Арбат", "ул. Профсоюзная"}
	banks       = []string{"Сбербанк", "ВТБ", "Альфа-Банк", "Тинькофф", "Газпромбанк", "Райффайзенбанк", "Росбанк"}
)

// Mock generates n user records. The same seed always yields the same rows.
func Mock(n int, seed uint64) []records.Record {
	if n < 0 {
		n = 0
	}
	rnd := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	out := make([]records.Record, n)
	for i := range out {
		female := rnd.IntN(2) == 1
		first := maleFirst[rnd.IntN(len(maleFirst))]
		last := lastNames[rnd.IntN(len(lastNames))]
		sex := "м"
		if female {
			first = femaleFirst[rnd.IntN(len(femaleFirst))]
			last += "а"
			sex = "ж"
		}
		out[i] = records.Record{
			ID:    i + 1,
			Name:  last + " " + first,
			IDNum: fmt.Sprintf("%04d %06d", 4500+rnd.IntN(500), rnd.IntN(1000000)),
			Phone: fmt.Sprintf("+7 (9%02d) %03d-%02d-%02d",
				rnd.IntN(100), rnd.IntN(1000), rnd.IntN(100), rnd.IntN(100)),
			Sex: sex,
			Birth: fmt.Sprintf("%02d.%02d.%04d",
				1+rnd.IntN(28), 1+rnd.IntN(12), 1955+rnd.IntN(50)),
			Station: stations[rnd.IntN(len(stations))],
			Address: fmt.Sprintf("Москва, %s, д. %d, кв. %d",
				streets[rnd.IntN(len(streets))], 1+rnd.IntN(120), 1+rnd.IntN(300)),
			BankName: banks[rnd.IntN(len(banks))],
			CardNum: fmt.Sprintf("%04d %04d %04d %04d",
				2200+rnd.IntN(100), rnd.IntN(10000), rnd.IntN(10000), rnd.IntN(10000)),
		}
	}
	return out
}
