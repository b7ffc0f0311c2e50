// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/schema/users.go
// Summary: Column schema of the user dataset.

package schema

import "github.com/framegrace/texeltable/internal/records"

// Users returns the schema used by the user table app.
func Users() *Schema {
	return MustNew(
		Leaf(records.FieldID, "№", NotSortable(), ReadOnly(), Align(AlignRight)),
		Leaf(records.FieldName, "Имя"),
		Group("Основная информация",
			Leaf(records.FieldIDNum, "ID номер", NotSortable(), ReadOnly()),
			Leaf(records.FieldPhone, "Номер телефона"),
			Leaf(records.FieldSex, "Пол"),
			Leaf(records.FieldBirth, "Дата рождения"),
			Leaf(records.FieldStation, "Станция метро"),
			Leaf(records.FieldAddress, "Адрес"),
		),
		Group("Банковская информация",
			Leaf(records.FieldBankName, "Наименование банка"),
			Leaf(records.FieldCardNum, "Номер карты"),
		),
	)
}
