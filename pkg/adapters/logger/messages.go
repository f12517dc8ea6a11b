package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ru", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Rendering %s: %d s at %dx%d, %d fps": "Рендер %s: %d с, %dx%d, %d кадр/с",
		"Video encoded: %d frames, %d bytes":  "Видео закодировано: %d кадров, %d байт",
		"Output saved to %s":                  "Файл сохранён: %s",
		"Interrupted, shutting down...":       "Прервано, завершение...",
		"Using encoder %s (%s)":               "Кодировщик %s (%s)",

		// Composite stage
		"Compositor ready: style=%s skin=%s counter=%.1fpx brand=%.1fpx": "Композитор готов: стиль=%s скин=%s счётчик=%.1fpx бренд=%.1fpx",

		// Encode stage
		"Encoding %d frames at %dx%d@%d, %d bps": "Кодирование %d кадров %dx%d@%d, %d бит/с",
		"Output format: %s %dx%d":                "Формат вывода: %s %dx%d",
		"Encoded %d samples (%d keyframes)":      "Закодировано %d сэмплов (%d ключевых)",

		// Codec and muxer
		"Started ffmpeg with %s at %d bps":            "ffmpeg запущен: %s, %d бит/с",
		"Signalled end of input after %d frames":      "Конец ввода после %d кадров",
		"Codec stopped: %d frames in, %d units out":   "Кодек остановлен: %d кадров на входе, %d единиц на выходе",
		"Track added: %s %dx%d":                       "Дорожка добавлена: %s %dx%d",
		"Muxer finalized: %d samples in %d fragments": "Контейнер завершён: %d сэмплов в %d фрагментах",
		"Encoder %s is listed but unusable: %v":       "Кодировщик %s указан, но недоступен: %v",

		// Warnings
		"Hardware H.264 encoder not available, falling back to %s": "Аппаратный H.264 кодировщик недоступен, используется %s",
		"Failed to save debug output: %v":                          "Не удалось сохранить отладочные данные: %v",
		"Failed to write summary: %v":                              "Не удалось записать сводку: %v",

		// Errors
		"Failed to calculate layout: %s": "Не удалось рассчитать разметку: %s",
		"Failed to encode video: %s":     "Ошибка кодирования видео: %s",
		"Failed to write output: %s":     "Не удалось создать файл: %s",
	})
}
