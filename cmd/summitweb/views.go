package main

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"

	"github.com/summitleadership/summitweb"
	"github.com/summitleadership/summitweb/markdown"
)

// builtinViews returns a plain HTML view set so the binary works out of the
// box. Sites that want a real design supply their own ViewFuncs and call
// summitweb.New directly.
func builtinViews(cfg summitweb.SiteConfig) summitweb.ViewFuncs {
	return summitweb.ViewFuncs{
		Home: func(page summitweb.Page, upcoming []summitweb.Training, siteURL string) templ.Component {
			return layout(cfg, page.Title, func(w io.Writer) error {
				if err := renderPageBody(w, page); err != nil {
					return err
				}
				if len(upcoming) > 0 {
					fmt.Fprint(w, "<h2>Upcoming trainings</h2><ul>")
					for _, t := range upcoming {
						fmt.Fprintf(w, "<li>%s %s (%s)</li>",
							esc(t.Date), esc(t.Title), esc(t.Location))
					}
					fmt.Fprint(w, "</ul>")
				}
				return nil
			})
		},
		Page: func(page summitweb.Page, meta summitweb.PageMeta) templ.Component {
			return layout(cfg, page.Title, func(w io.Writer) error {
				return renderPageBody(w, page)
			})
		},
		Programs: func(page summitweb.Page, trainings []summitweb.Training) templ.Component {
			return layout(cfg, page.Title, func(w io.Writer) error {
				if err := renderPageBody(w, page); err != nil {
					return err
				}
				for _, t := range trainings {
					fmt.Fprintf(w, "<article><h2>%s</h2><p>%s · %s</p><p>%s</p></article>",
						esc(t.Title), esc(formatDates(t)), esc(t.Location), esc(t.Summary))
				}
				return nil
			})
		},
		Calendar: func(page summitweb.Page, months []summitweb.CalendarMonth, active string) templ.Component {
			return layout(cfg, page.Title, func(w io.Writer) error {
				if err := renderPageBody(w, page); err != nil {
					return err
				}
				for _, m := range months {
					fmt.Fprintf(w, "<h2>%s</h2><ul>", esc(m.Label))
					for _, t := range m.Trainings {
						fmt.Fprintf(w, "<li>%s %s (%s)</li>",
							esc(t.Date), esc(t.Title), esc(t.Location))
					}
					fmt.Fprint(w, "</ul>")
				}
				return nil
			})
		},
		Gallery: func(page summitweb.Page, photos []summitweb.Photo) templ.Component {
			return layout(cfg, page.Title, func(w io.Writer) error {
				if err := renderPageBody(w, page); err != nil {
					return err
				}
				for _, p := range photos {
					src := p.URL
					if p.Filename != "" {
						src = "/public/uploads/" + p.Filename
					}
					fmt.Fprintf(w, `<figure><img src="%s" alt="%s" loading="lazy"><figcaption>%s</figcaption></figure>`,
						esc(src), esc(p.Caption), esc(p.Caption))
				}
				return nil
			})
		},
		Contact: func(page summitweb.Page, sent bool, csrfToken string) templ.Component {
			return layout(cfg, page.Title, func(w io.Writer) error {
				if err := renderPageBody(w, page); err != nil {
					return err
				}
				if sent {
					fmt.Fprint(w, "<p>Thank you, your message has been sent.</p>")
					return nil
				}
				fmt.Fprint(w, `<form method="post" action="/contact/">`+
					csrfField(csrfToken)+
					`<label>Name <input name="name" required></label>`+
					`<label>Email <input name="email" type="email" required></label>`+
					`<label>Message <textarea name="message" required></textarea></label>`+
					`<button type="submit">Send</button></form>`)
				return nil
			})
		},
		AdminLogin: func(showError bool, csrfToken string) templ.Component {
			return layout(cfg, "Admin", func(w io.Writer) error {
				if showError {
					fmt.Fprint(w, "<p>Invalid password.</p>")
				}
				fmt.Fprint(w, `<form method="post" action="/admin/login/">`+
					csrfField(csrfToken)+
					`<label>Password <input name="password" type="password" required></label>`+
					`<button type="submit">Log in</button></form>`)
				return nil
			})
		},
		AdminDashboard: func(pages []summitweb.Page, trainings []summitweb.Training, message string, csrfToken string) templ.Component {
			return layout(cfg, "Dashboard", func(w io.Writer) error {
				if message != "" {
					fmt.Fprintf(w, "<p>%s</p>", esc(message))
				}
				fmt.Fprint(w, "<h2>Pages</h2><ul>")
				for _, p := range pages {
					fmt.Fprintf(w, `<li><a href="/admin/page/%s/">%s</a></li>`, esc(p.Slug), esc(p.Title))
				}
				fmt.Fprint(w, "</ul><h2>Trainings</h2><ul>")
				for _, t := range trainings {
					fmt.Fprintf(w, `<li><a href="/admin/training/%s/">%s %s</a></li>`,
						esc(t.ID), esc(t.Date), esc(t.Title))
				}
				fmt.Fprint(w, `</ul><p><a href="/admin/training/new/">New training</a> · `+
					`<a href="/admin/photos/">Photos</a></p>`)
				fmt.Fprintf(w, `<form method="post" action="/admin/logout/">%s<button type="submit">Log out</button></form>`,
					csrfField(csrfToken))
				return nil
			})
		},
		AdminPageForm: func(page summitweb.Page, csrfToken string) templ.Component {
			return layout(cfg, "Edit page", func(w io.Writer) error {
				fmt.Fprintf(w, `<form method="post" action="/admin/save-page/">`+
					csrfField(csrfToken)+
					`<input type="hidden" name="slug" value="%s">`+
					`<label>Title <input name="title" value="%s"></label>`+
					`<label>Body <textarea name="body" rows="20">%s</textarea></label>`+
					`<button type="submit">Save</button></form>`,
					esc(page.Slug), esc(page.Title), esc(page.Body))
				return nil
			})
		},
		AdminTrainingForm: func(t summitweb.Training, csrfToken string) templ.Component {
			return layout(cfg, "Edit training", func(w io.Writer) error {
				checked := ""
				if t.Published {
					checked = " checked"
				}
				fmt.Fprintf(w, `<form method="post" action="/admin/save-training/">`+
					csrfField(csrfToken)+
					`<input type="hidden" name="id" value="%s">`+
					`<label>Title <input name="title" value="%s" required></label>`+
					`<label>Date <input name="date" value="%s" placeholder="YYYY-MM-DD" required></label>`+
					`<label>End date <input name="end_date" value="%s" placeholder="YYYY-MM-DD"></label>`+
					`<label>Location <input name="location" value="%s"></label>`+
					`<label>Summary <input name="summary" value="%s"></label>`+
					`<label>Body <textarea name="body" rows="12">%s</textarea></label>`+
					`<label><input type="checkbox" name="published" value="1"%s> Published</label>`+
					`<button type="submit">Save</button></form>`,
					esc(t.ID), esc(t.Title), esc(t.Date), esc(t.EndDate),
					esc(t.Location), esc(t.Summary), esc(t.Body), checked)
				return nil
			})
		},
		AdminPhotos: func(photos []summitweb.Photo, csrfToken string) templ.Component {
			return layout(cfg, "Photos", func(w io.Writer) error {
				fmt.Fprint(w, `<form method="post" action="/admin/photos/upload/" enctype="multipart/form-data">`+
					csrfField(csrfToken)+
					`<input type="file" name="image" accept="image/*" required>`+
					`<label>Caption <input name="caption"></label>`+
					`<label>Album <input name="album"></label>`+
					`<button type="submit">Upload</button></form>`)
				fmt.Fprint(w, `<p><a href="/admin/photos/import/">Import from Google Photos</a></p><ul>`)
				for _, p := range photos {
					fmt.Fprintf(w, "<li>%s (%s)</li>", esc(p.Caption), esc(p.Source))
				}
				fmt.Fprint(w, "</ul>")
				return nil
			})
		},
		NotFound: func() templ.Component {
			return layout(cfg, "Not found", func(w io.Writer) error {
				fmt.Fprint(w, `<p>That page does not exist. <a href="/">Back home.</a></p>`)
				return nil
			})
		},
		ServerError: func() templ.Component {
			return layout(cfg, "Something went wrong", func(w io.Writer) error {
				fmt.Fprint(w, `<p>Something went wrong on our end. Please try again.</p>`)
				return nil
			})
		},
	}
}

func layout(cfg summitweb.SiteConfig, title string, body func(io.Writer) error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		fmt.Fprintf(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`+
			`<meta name="viewport" content="width=device-width, initial-scale=1">`+
			`<title>%s | %s</title></head><body>`,
			esc(title), esc(cfg.Name))
		fmt.Fprintf(w, `<header><a href="/">%s</a><nav>`+
			`<a href="/about/">About</a> <a href="/mission/">Mission</a> `+
			`<a href="/programs/">Programs</a> <a href="/calendar/">Calendar</a> `+
			`<a href="/gallery/">Gallery</a> <a href="/contact/">Contact</a>`+
			`</nav></header><main>`, esc(cfg.Name))
		if err := body(w); err != nil {
			return err
		}
		fmt.Fprintf(w, `</main><footer><p>© %s</p></footer>`+
			`<script src="/public/analytics.js" defer></script></body></html>`, esc(cfg.Name))
		return nil
	})
}

func renderPageBody(w io.Writer, page summitweb.Page) error {
	fmt.Fprintf(w, "<h1>%s</h1>", esc(page.Title))
	return markdown.Markdown(page.Body).Render(context.Background(), w)
}

func formatDates(t summitweb.Training) string {
	if t.EndDate != "" && t.EndDate != t.Date {
		return t.Date + " to " + t.EndDate
	}
	return t.Date
}

func csrfField(token string) string {
	return fmt.Sprintf(`<input type="hidden" name="_csrf" value="%s">`, esc(token))
}

func esc(s string) string {
	return html.EscapeString(s)
}
