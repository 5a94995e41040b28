// Package router разбирает фрагмент адреса (часть после '#') в типизированный
// маршрут и рассылает уведомления об изменениях фрагмента подписчикам.
package router

import (
	"strings"
)

// Page перечисляет страницы приложения.
type Page int

const (
	PageHome Page = iota
	PageLogin
	PageRegister
	PageCreate
	PageDetails
	PageEdit
	PageNotFound
)

// String возвращает имя страницы (для логов и отладки).
func (p Page) String() string {
	switch p {
	case PageHome:
		return "home"
	case PageLogin:
		return "login"
	case PageRegister:
		return "register"
	case PageCreate:
		return "create"
	case PageDetails:
		return "details"
	case PageEdit:
		return "edit"
	case PageNotFound:
		return "notfound"
	default:
		return "unknown"
	}
}

// Route представляет разобранный маршрут. Значение временное: оно заново
// вычисляется из фрагмента при каждой навигации и нигде не сохраняется.
type Route struct {
	Page    Page
	MovieID string
}

// Parse разбирает фрагмент адреса в маршрут. Чистая функция.
// Ведущий '#' отбрасывается, query-часть игнорируется, путь режется по '/'.
func Parse(fragment string) Route {
	cleaned := strings.TrimPrefix(fragment, "#")
	// Query-часть нас не интересует
	cleaned, _, _ = strings.Cut(cleaned, "?")

	var parts []string
	for _, p := range strings.Split(cleaned, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}

	if len(parts) == 0 {
		return Route{Page: PageHome}
	}

	switch parts[0] {
	case "login":
		if len(parts) == 1 {
			return Route{Page: PageLogin}
		}
	case "register":
		if len(parts) == 1 {
			return Route{Page: PageRegister}
		}
	case "create":
		if len(parts) == 1 {
			return Route{Page: PageCreate}
		}
	case "movies":
		if len(parts) == 2 {
			return Route{Page: PageDetails, MovieID: parts[1]}
		}
		if len(parts) == 3 && parts[2] == "edit" {
			return Route{Page: PageEdit, MovieID: parts[1]}
		}
	}

	return Route{Page: PageNotFound}
}

// Router хранит текущий фрагмент и список подписчиков.
// Все методы вызываются из одного цикла событий, поэтому синхронизация не нужна.
type Router struct {
	fragment string
	nextID   int
	subs     map[int]func(Route)
	mounted  bool
}

// New создает роутер с указанным начальным фрагментом.
func New(fragment string) *Router {
	return &Router{
		fragment: fragment,
		subs:     make(map[int]func(Route)),
	}
}

// Mount выполняет одноразовую нормализацию при старте: пустой фрагмент
// приводится к "/" (домашней странице). Повторные вызовы ничего не делают.
func (r *Router) Mount() {
	if r.mounted {
		return
	}
	r.mounted = true
	if r.fragment == "" {
		r.Navigate("/")
	}
}

// Current возвращает маршрут, соответствующий текущему фрагменту.
func (r *Router) Current() Route {
	return Parse(r.fragment)
}

// Fragment возвращает текущий фрагмент как есть.
func (r *Router) Fragment() string {
	return r.fragment
}

// Navigate обновляет фрагмент и синхронно уведомляет подписчиков.
// Маршрут вычисляется до вызова подписчиков, чтобы любые загрузки данных,
// привязанные к новому маршруту, видели уже актуальное значение.
func (r *Router) Navigate(path string) {
	r.fragment = path
	route := Parse(path)
	for _, fn := range r.subs {
		fn(route)
	}
}

// Subscribe регистрирует подписчика на изменения маршрута и возвращает
// функцию отписки. Отписку обязательно вызывать при завершении работы,
// иначе ссылка на подписчика останется в роутере.
func (r *Router) Subscribe(fn func(Route)) func() {
	id := r.nextID
	r.nextID++
	r.subs[id] = fn
	return func() {
		delete(r.subs, id)
	}
}
