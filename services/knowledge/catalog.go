// Package knowledge holds the static DataLens formula catalog and the
// keyword-based lexical search over it.
package knowledge

import "github.com/dlformula/assistant/models"

// catalog is the static formula knowledge base, grouped by category.
// Loaded once at process start; never mutated.
var catalog = []models.FormulaEntry{
	// Math
	{
		Name:        "ABS",
		Syntax:      "ABS( number )",
		Description: "Возвращает абсолютное значение заданного числа number.",
		Category:    models.CategoryMath,
		Keywords:    []string{"абсолютное", "значение", "модуль", "число"},
	},
	{
		Name:        "ROUND",
		Syntax:      "ROUND( number [ , precision ] )",
		Description: "Округляет число number до указанного числа знаков precision после запятой.",
		Category:    models.CategoryMath,
		Keywords:    []string{"округление", "точность", "знаки", "запятая"},
	},
	{
		Name:        "CEILING",
		Syntax:      "CEILING( number )",
		Description: "Округляет значение до ближайшего целого числа в большую сторону.",
		Category:    models.CategoryMath,
		Keywords:    []string{"округление", "вверх", "больший", "целое"},
	},
	{
		Name:        "FLOOR",
		Syntax:      "FLOOR( number )",
		Description: "Округляет значение до ближайшего целого числа в меньшую сторону.",
		Category:    models.CategoryMath,
		Keywords:    []string{"округление", "вниз", "меньший", "целое"},
	},
	{
		Name:        "POWER",
		Syntax:      "POWER( base, power )",
		Description: "Возводит число base в степень power.",
		Category:    models.CategoryMath,
		Keywords:    []string{"степень", "возведение", "основание"},
	},
	{
		Name:        "SQRT",
		Syntax:      "SQRT( number )",
		Description: "Возвращает квадратный корень заданного числа.",
		Category:    models.CategoryMath,
		Keywords:    []string{"корень", "квадратный", "извлечение"},
	},

	// String
	{
		Name:        "CONCAT",
		Syntax:      "CONCAT( arg_1, arg_2, arg_3 [ , ... ] )",
		Description: "Объединяет произвольное количество строк.",
		Category:    models.CategoryString,
		Keywords:    []string{"объединение", "конкатенация", "склеивание", "строки"},
	},
	{
		Name:        "LEN",
		Syntax:      "LEN( value )",
		Description: "Возвращает количество символов в строке или элементов в массиве value.",
		Category:    models.CategoryString,
		Keywords:    []string{"длина", "количество", "символы", "размер"},
	},
	{
		Name:        "SUBSTR",
		Syntax:      "SUBSTR( string, from_index [ , length ] )",
		Description: "Возвращает подстроку string, начиная с индекса from_index.",
		Category:    models.CategoryString,
		Keywords:    []string{"подстрока", "извлечение", "часть", "индекс"},
	},
	{
		Name:        "UPPER",
		Syntax:      "UPPER( string )",
		Description: "Возвращает строку string в верхнем регистре.",
		Category:    models.CategoryString,
		Keywords:    []string{"верхний", "регистр", "заглавные", "буквы"},
	},
	{
		Name:        "LOWER",
		Syntax:      "LOWER( string )",
		Description: "Возвращает строку string в нижнем регистре.",
		Category:    models.CategoryString,
		Keywords:    []string{"нижний", "регистр", "строчные", "буквы"},
	},
	{
		Name:        "TRIM",
		Syntax:      "TRIM( string )",
		Description: "Возвращает строку string без знаков пробела в начале и конце строки.",
		Category:    models.CategoryString,
		Keywords:    []string{"обрезка", "пробелы", "очистка", "начало", "конец"},
	},
	{
		Name:        "REPLACE",
		Syntax:      "REPLACE( string, substring, replace_with )",
		Description: "Ищет подстроку substring в строке string и заменяет ее строкой replace_with.",
		Category:    models.CategoryString,
		Keywords:    []string{"замена", "поиск", "подстрока", "заменить"},
	},
	{
		Name:        "SPLIT",
		Syntax:      "SPLIT( orig_string [ , delimiter [ , part_index ] ] )",
		Description: "Разделяет orig_string на последовательность подстрок, используя символ разделителя delimiter.",
		Category:    models.CategoryString,
		Keywords:    []string{"разделение", "разбивка", "делитель", "массив"},
	},

	// Date and time
	{
		Name:        "DATE",
		Syntax:      "DATE( expression [ , timezone ] )",
		Description: "Переводит выражение expression в формат даты.",
		Category:    models.CategoryDate,
		Keywords:    []string{"дата", "преобразование", "формат", "время"},
	},
	{
		Name:        "DATEADD",
		Syntax:      "DATEADD( datetime [ , unit [ , number ] ] )",
		Description: "Возвращает дату, полученную в результате добавления unit в количестве number к указанной дате datetime.",
		Category:    models.CategoryDate,
		Keywords:    []string{"добавление", "дата", "прибавить", "единица", "время"},
	},
	{
		Name:        "DATETRUNC",
		Syntax:      "DATETRUNC( datetime, unit [ , number ] )",
		Description: "Возвращает дату, округленную по аргументу unit.",
		Category:    models.CategoryDate,
		Keywords:    []string{"округление", "дата", "единица", "обрезка"},
	},
	{
		Name:        "YEAR",
		Syntax:      "YEAR( datetime )",
		Description: "Возвращает номер года в указанной дате datetime.",
		Category:    models.CategoryDate,
		Keywords:    []string{"год", "извлечение", "дата", "номер"},
	},
	{
		Name:        "MONTH",
		Syntax:      "MONTH( datetime )",
		Description: "Возвращает номер месяца в году в указанной дате datetime.",
		Category:    models.CategoryDate,
		Keywords:    []string{"месяц", "извлечение", "дата", "номер"},
	},
	{
		Name:        "DAY",
		Syntax:      "DAY( datetime )",
		Description: "Возвращает номер дня в месяце в указанной дате datetime.",
		Category:    models.CategoryDate,
		Keywords:    []string{"день", "извлечение", "дата", "номер"},
	},
	{
		Name:        "NOW",
		Syntax:      "NOW()",
		Description: "Возвращает текущую дату и время в зависимости от источника данных и типа соединения.",
		Category:    models.CategoryDate,
		Keywords:    []string{"текущая", "дата", "время", "сейчас"},
	},
	{
		Name:        "TODAY",
		Syntax:      "TODAY()",
		Description: "Возвращает текущую дату в зависимости от источника данных и типа соединения.",
		Category:    models.CategoryDate,
		Keywords:    []string{"сегодня", "текущая", "дата"},
	},

	// Aggregate
	{
		Name:        "SUM",
		Syntax:      "SUM( value )",
		Description: "Возвращает сумму всех значений выражения. Работает только с числовыми типами данных.",
		Category:    models.CategoryAggregate,
		Keywords:    []string{"сумма", "сложение", "итого", "общая"},
	},
	{
		Name:        "SUM_IF",
		Syntax:      "SUM_IF( expression, condition )",
		Description: "Возвращает сумму всех значений выражения, которые удовлетворяют условию condition.",
		Category:    models.CategoryAggregate,
		Keywords:    []string{"сумма", "условие", "если", "фильтр"},
	},
	{
		Name:        "AVG",
		Syntax:      "AVG( value )",
		Description: "Возвращает среднее для всех значений. Работает с числовыми типами данных и с типами Дата.",
		Category:    models.CategoryAggregate,
		Keywords:    []string{"среднее", "средний", "арифметическое"},
	},
	{
		Name:        "AVG_IF",
		Syntax:      "AVG_IF( expression, condition )",
		Description: "Возвращает среднее для всех значений, которые удовлетворяют условию condition.",
		Category:    models.CategoryAggregate,
		Keywords:    []string{"среднее", "условие", "если", "фильтр"},
	},
	{
		Name:        "COUNT",
		Syntax:      "COUNT( [ value ] )",
		Description: "Возвращает количество элементов в группе.",
		Category:    models.CategoryAggregate,
		Keywords:    []string{"количество", "счет", "подсчет", "число"},
	},
	{
		Name:        "COUNT_IF",
		Syntax:      "COUNT_IF( condition )",
		Description: "Возвращает количество элементов в группе, которые удовлетворяют условию condition.",
		Category:    models.CategoryAggregate,
		Keywords:    []string{"количество", "условие", "если", "фильтр", "счет"},
	},
	{
		Name:        "MAX",
		Syntax:      "MAX( value )",
		Description: "Возвращает максимальное значение.",
		Category:    models.CategoryAggregate,
		Keywords:    []string{"максимум", "наибольший", "самый", "большой"},
	},
	{
		Name:        "MIN",
		Syntax:      "MIN( value )",
		Description: "Возвращает минимальное значение.",
		Category:    models.CategoryAggregate,
		Keywords:    []string{"минимум", "наименьший", "самый", "маленький"},
	},
	{
		Name:        "COUNTD",
		Syntax:      "COUNTD( value )",
		Description: "Возвращает количество уникальных значений в группе.",
		Category:    models.CategoryAggregate,
		Keywords:    []string{"уникальные", "различные", "количество", "счет"},
	},

	// Logical
	{
		Name:        "IF",
		Syntax:      "IF condition_1 THEN result_1 [ ELSEIF condition_2 THEN result_2 ... ] ELSE default_result END",
		Description: "Проверяет последовательно логические выражения и возвращает соответствующий результат для первого выполнения.",
		Category:    models.CategoryLogical,
		Keywords:    []string{"если", "условие", "то", "иначе", "проверка"},
	},
	{
		Name:        "CASE",
		Syntax:      "CASE expression WHEN value_1 THEN result_1 [ WHEN value_2 THEN result_2 ... ] ELSE default_result END",
		Description: "Сравнивает выражение expression с последовательностью значений и возвращает результат для первого совпадения.",
		Category:    models.CategoryLogical,
		Keywords:    []string{"случай", "когда", "то", "сравнение", "выбор"},
	},
	{
		Name:        "IFNULL",
		Syntax:      "IFNULL( check_value, alt_value )",
		Description: "Возвращает check_value, если оно не NULL. В противном случае возвращает alt_value.",
		Category:    models.CategoryLogical,
		Keywords:    []string{"null", "пустой", "альтернатива", "замена"},
	},
	{
		Name:        "ISNULL",
		Syntax:      "ISNULL( expression )",
		Description: "Возвращает TRUE, если expression является NULL. В противном случае возвращает FALSE.",
		Category:    models.CategoryLogical,
		Keywords:    []string{"проверка", "null", "пустой", "является"},
	},
	{
		Name:        "BETWEEN",
		Syntax:      "value [ NOT ] BETWEEN low AND high",
		Description: "Возвращает TRUE, если value принадлежит диапазону значений с low по high включительно.",
		Category:    models.CategoryLogical,
		Keywords:    []string{"между", "диапазон", "от", "до", "включительно"},
	},
	{
		Name:        "IN",
		Syntax:      "item [ NOT ] IN (<list>)",
		Description: "Проверяет условие соответствия значения хотя бы одному из значений, перечисленных в IN(...).",
		Category:    models.CategoryLogical,
		Keywords:    []string{"в", "список", "содержится", "один", "из"},
	},

	// Window
	{
		Name:        "RANK",
		Syntax:      "RANK( value [ , direction ] )",
		Description: "Выполняет ранжирование значений с пропусками: возвращает порядковый номер строки при сортировке по value.",
		Category:    models.CategoryWindow,
		Keywords:    []string{"ранг", "ранжирование", "порядок", "сортировка"},
	},
	{
		Name:        "RANK_DENSE",
		Syntax:      "RANK_DENSE( value [ , direction ] )",
		Description: "Выполняет ранжирование значений без пропусков.",
		Category:    models.CategoryWindow,
		Keywords:    []string{"плотный", "ранг", "без", "пропусков"},
	},
	{
		Name:        "LAG",
		Syntax:      "LAG( value [ , offset [ , default ] ] )",
		Description: "Возвращает значение value из строки со смещением offset относительно текущей в рамках заданного окна.",
		Category:    models.CategoryWindow,
		Keywords:    []string{"смещение", "предыдущий", "назад", "окно"},
	},
	{
		Name:        "FIRST",
		Syntax:      "FIRST( value )",
		Description: "Возвращает значение value из первой строки заданного окна.",
		Category:    models.CategoryWindow,
		Keywords:    []string{"первый", "начало", "окно", "строка"},
	},
	{
		Name:        "LAST",
		Syntax:      "LAST( value )",
		Description: "Возвращает значение value из последней строки заданного окна.",
		Category:    models.CategoryWindow,
		Keywords:    []string{"последний", "конец", "окно", "строка"},
	},

	// Array
	{
		Name:        "ARRAY",
		Syntax:      "ARRAY( value_1, value_2, value_3 [ , ... ] )",
		Description: "Возвращает массив, содержащий переданные элементы.",
		Category:    models.CategoryArray,
		Keywords:    []string{"массив", "создание", "элементы", "список"},
	},
	{
		Name:        "GET_ITEM",
		Syntax:      "GET_ITEM( array, index )",
		Description: "Возвращает элемент с индексом index из массива array.",
		Category:    models.CategoryArray,
		Keywords:    []string{"элемент", "индекс", "получить", "массив"},
	},
	{
		Name:        "SLICE",
		Syntax:      "SLICE( array, offset, length )",
		Description: "Возвращает часть массива array длины length, начиная с индекса offset.",
		Category:    models.CategoryArray,
		Keywords:    []string{"срез", "часть", "массив", "длина"},
	},
	{
		Name:        "CONTAINS",
		Syntax:      "CONTAINS( array, value )",
		Description: "Возвращает TRUE, если array содержит value.",
		Category:    models.CategoryArray,
		Keywords:    []string{"содержит", "проверка", "массив", "значение"},
	},
	{
		Name:        "UNNEST",
		Syntax:      "UNNEST( array )",
		Description: "Дублирует исходную строку для каждого элемента массива array.",
		Category:    models.CategoryArray,
		Keywords:    []string{"развертывание", "строки", "элементы", "дублирование"},
	},
}

// Entries returns all catalog entries in their canonical order.
// The returned slice must not be modified.
func Entries() []models.FormulaEntry {
	return catalog
}

// Categories returns the distinct categories in catalog order
func Categories() []models.FormulaCategory {
	seen := make(map[models.FormulaCategory]bool)
	var cats []models.FormulaCategory
	for _, e := range catalog {
		if !seen[e.Category] {
			seen[e.Category] = true
			cats = append(cats, e.Category)
		}
	}
	return cats
}

// Lookup returns the catalog entry for an exact function name
func Lookup(name string) (models.FormulaEntry, bool) {
	for _, e := range catalog {
		if e.Name == name {
			return e, true
		}
	}
	return models.FormulaEntry{}, false
}
