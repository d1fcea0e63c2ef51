// Package messages holds the user-facing texts and keyboard labels of the bot.
package messages

import "strings"

// Catalog is one locale's vocabulary. Format strings take the task text as %s.
type Catalog struct {
	Locale string

	Welcome    string
	ListHeader string
	ListEmpty  string
	DuePrefix  string
	Done       string
	Open       string

	AskTaskText   string
	AskTaskDate   string
	DateMalformed string
	DatePast      string
	TaskAdded     string

	AskCompleteNumber string
	AskDeleteNumber   string
	PromptListEmpty   string
	Completed         string
	Deleted           string
	NoSuchTask        string

	Failure string

	LabelNewTask  string
	LabelList     string
	LabelComplete string
	LabelDelete   string

	// NoneTokens skip the due date; compared case-insensitively.
	NoneTokens []string

	// CommandHelp describes each slash command for the bot menu.
	CommandHelp map[string]string
}

// Labels returns the main keyboard layout: two rows of two buttons.
func (c *Catalog) Labels() [][]string {
	return [][]string{
		{c.LabelNewTask, c.LabelList},
		{c.LabelComplete, c.LabelDelete},
	}
}

var english = Catalog{
	Locale: "en",

	Welcome:    "Hi! I am your task tracker 🚀\nEvery task is saved automatically.",
	ListHeader: "📋 Your tasks:",
	ListEmpty:  "The task list is empty 📭",
	DuePrefix:  "Due",
	Done:       "✓",
	Open:       "✗",

	AskTaskText:   "Enter the task text:",
	AskTaskDate:   "Enter a due date (DD-MM-YYYY) or type 'none':",
	DateMalformed: "Wrong format! Use DD-MM-YYYY or 'none':",
	DatePast:      "That date has already passed! Try again or type 'none':",
	TaskAdded:     "✅ Task added!",

	AskCompleteNumber: "Enter the number of the task you finished:",
	AskDeleteNumber:   "Enter the number of the task to delete:",
	PromptListEmpty:   "The list is empty.",
	Completed:         "Task «%s» marked as done! 🎉",
	Deleted:           "Task «%s» deleted.",
	NoSuchTask:        "There is no task with that number!",

	Failure: "Something went wrong, please try again.",

	LabelNewTask:  "➕ New task",
	LabelList:     "📋 List",
	LabelComplete: "✅ Complete",
	LabelDelete:   "🗑 Delete",

	NoneTokens: []string{"none"},

	CommandHelp: map[string]string{
		"start":    "Show the main menu",
		"list":     "List all tasks",
		"new":      "Create a task",
		"complete": "Mark a task as done",
		"delete":   "Delete a task",
	},
}

var russian = Catalog{
	Locale: "ru",

	Welcome:    "Привет! Я трекер задач 🚀\nВсе ваши задачи сохраняются автоматически.",
	ListHeader: "📋 Ваши задачи:",
	ListEmpty:  "Список задач пуст 📭",
	DuePrefix:  "До",
	Done:       "✓",
	Open:       "✗",

	AskTaskText:   "Введите текст задачи:",
	AskTaskDate:   "Введите дату (ДД-ММ-ГГГГ) или напишите 'нет':",
	DateMalformed: "Ошибка формата! Используйте ДД-ММ-ГГГГ или 'нет':",
	DatePast:      "Дата уже прошла! Попробуйте еще раз или 'нет':",
	TaskAdded:     "✅ Задача добавлена!",

	AskCompleteNumber: "Введите номер задачи, которую вы выполнили:",
	AskDeleteNumber:   "Введите номер задачи для удаления:",
	PromptListEmpty:   "Список пуст.",
	Completed:         "Задача «%s» отмечена как выполненная! 🎉",
	Deleted:           "Задача «%s» удалена.",
	NoSuchTask:        "Нет задачи под таким номером!",

	Failure: "Что-то пошло не так, попробуйте еще раз.",

	LabelNewTask:  "➕ Новая задача",
	LabelList:     "📋 Список",
	LabelComplete: "✅ Завершить",
	LabelDelete:   "🗑 Удалить",

	NoneTokens: []string{"нет", "none"},

	CommandHelp: map[string]string{
		"start":    "Главное меню",
		"list":     "Список задач",
		"new":      "Новая задача",
		"complete": "Отметить задачу выполненной",
		"delete":   "Удалить задачу",
	},
}

// For returns the catalog of locale, falling back to English.
func For(locale string) *Catalog {
	switch strings.ToLower(strings.TrimSpace(locale)) {
	case "ru":
		c := russian
		return &c
	default:
		c := english
		return &c
	}
}
