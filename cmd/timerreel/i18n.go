// Package main provides localization for the timerreel CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Russian translations for CLI messages.
	l10n.Register("ru", l10n.LexiconMap{
		// Flag categories
		"Output":     "Вывод",
		"Video":      "Видео",
		"Appearance": "Оформление",
		"Brand":      "Бренд",
		"Water":      "Вода",
		"Encoding":   "Кодирование",
		"Debug":      "Отладка",
		"Logging":    "Журнал",

		// Root command
		"Render timer and stopwatch videos":                                                   "Рендер видео с таймером и секундомером",
		"timerreel renders an animated countdown or count-up display into an H.264 MP4 file.": "timerreel рендерит анимированный обратный или прямой отсчёт в файл MP4 (H.264).",

		// Timer command
		"Render a countdown timer": "Рендер таймера",
		"Render a timer that counts down to zero, or up from zero with --forward.": "Рендер таймера с обратным отсчётом до нуля или прямым отсчётом от нуля с --forward.",
		"Timer hours (0-99)":                 "Часы (0-99)",
		"Timer minutes (0-59)":               "Минуты (0-59)",
		"Timer seconds (0-59)":               "Секунды (0-59)",
		"Count up from zero instead of down": "Прямой отсчёт от нуля вместо обратного",

		// Stopwatch command
		"Render a stopwatch":                           "Рендер секундомера",
		"Render a stopwatch that counts up from zero.": "Рендер секундомера с отсчётом от нуля.",
		"Stopwatch length in seconds (min: 1)":         "Длительность секундомера в секундах (мин.: 1)",

		// Inspect command
		"Show the video track of an MP4 file": "Показать видеодорожку файла MP4",
		"List every sample":                   "Вывести все сэмплы",
		"An MP4 file argument is required":    "Укажите файл MP4",

		// Output flags
		"YAML configuration file":                         "Файл конфигурации YAML",
		"Output MP4 file path":                            "Путь к выходному файлу MP4",
		"Directory for generated file names":              "Каталог для файлов с автоматическим именем",
		"Output render summary to file (Markdown format)": "Записать сводку рендера в файл (Markdown)",

		// Video flags
		"Video width (640-3840)":  "Ширина видео (640-3840)",
		"Video height (360-2160)": "Высота видео (360-2160)",
		"Frame rate (30-120)":     "Частота кадров (30-120)",

		// Appearance flags
		"Counter style (plain, neon, fire, water, video)":          "Стиль цифр (plain, neon, fire, water, video)",
		"Background skin (none, minimal, lcd, glass, retro, flip)": "Скин фона (none, minimal, lcd, glass, retro, flip)",
		"Counter color (#RRGGBB or #AARRGGBB)":                     "Цвет цифр (#RRGGBB или #AARRGGBB)",
		"Background color (#RRGGBB or #AARRGGBB)":                  "Цвет фона (#RRGGBB или #AARRGGBB)",
		"Outline color of the plain style":                         "Цвет обводки стиля plain",
		"Outline width of the plain style":                         "Толщина обводки стиля plain",

		// Brand flags
		"Brand label text (empty disables it)":  "Текст бренда (пустой отключает надпись)",
		"Animate the brand label":               "Анимировать надпись бренда",
		"Brand animation speed":                 "Скорость анимации бренда",
		"Brand animation amplitude":             "Амплитуда анимации бренда",
		"Brand horizontal position (0.02-0.98)": "Положение бренда по горизонтали (0.02-0.98)",
		"Brand vertical position (0.05-0.95)":   "Положение бренда по вертикали (0.05-0.95)",

		// Water flags
		"Draw waves inside the digits": "Волны внутри цифр",
		"Wave intensity":               "Интенсивность волн",
		"Bubble speed":                 "Скорость пузырьков",

		// Encoding flags
		"Force an ffmpeg H.264 encoder (e.g. h264_nvenc)":       "Принудительный кодировщик ffmpeg H.264 (например, h264_nvenc)",
		"Force software encoding (libx264)":                     "Программное кодирование (libx264)",
		"Path to ffmpeg (falls back to FFMPEG_PATH, then PATH)": "Путь к ffmpeg (иначе FFMPEG_PATH, затем PATH)",

		// Debug flags
		"Enable debug output":                         "Включить отладочный вывод",
		"Directory for debug output":                  "Каталог отладочного вывода",
		"Save every Nth frame (0 = first frame only)": "Сохранять каждый N-й кадр (0 = только первый)",

		// Logging flags
		"Log level (debug, info, warn, error)": "Уровень журнала (debug, info, warn, error)",
		"Suppress all log output":              "Отключить вывод журнала",

		// Runtime messages
		"Rendering":                    "Рендер",
		"Summary saved to %s":          "Сводка сохранена: %s",
		"Error: %s":                    "Ошибка: %s",
		"set a timer longer than zero": "задай время таймера больше нуля",

		// Inspect output
		"File":                     "Файл",
		"Codec":                    "Кодек",
		"Size":                     "Размер",
		"Frame rate":               "Частота",
		"Duration":                 "Длительность",
		"Samples":                  "Сэмплы",
		"keyframes":                "ключевых",
		"Layout":                   "Структура",
		"progressive":              "обычная",
		"fragmented, %d fragments": "фрагментированная, %d фрагментов",

		// Summary content
		"Render Summary":         "Сводка рендера",
		"Generated":              "Создано",
		"Session":                "Сессия",
		"Settings":               "Параметры",
		"Item":                   "Параметр",
		"Value":                  "Значение",
		"Kind":                   "Тип",
		"timer":                  "таймер",
		"stopwatch":              "секундомер",
		"Direction":              "Направление",
		"up":                     "прямой",
		"down":                   "обратный",
		"Start Value":            "Начальное значение",
		"Style":                  "Стиль",
		"Skin":                   "Скин",
		"Resolution":             "Разрешение",
		"Frame Rate":             "Частота кадров",
		"Encoder":                "Кодировщик",
		"Frames":                 "Кадры",
		"Keyframes":              "Ключевые кадры",
		"Video Duration":         "Длительность видео",
		"File Size":              "Размер файла",
		"Bit Rate":               "Битрейт",
		"Render Time":            "Время рендера",
		"Generated by timerreel": "Создано timerreel",
	})
}
