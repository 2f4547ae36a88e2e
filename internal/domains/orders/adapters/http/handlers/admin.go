package handlers

import (
	"html/template"
	"time"

	"github.com/Apurer/choufli-storefront/internal/domains/orders/domain"
)

// AdminTemplateName is the name the admin page is registered under.
const AdminTemplateName = "admin.html"

// AdminTemplate parses the admin order table. Register it with
// gin.Engine.SetHTMLTemplate.
func AdminTemplate() *template.Template {
	return template.Must(template.New(AdminTemplateName).Funcs(template.FuncMap{
		"summary": func(o *domain.Order) string { return o.ItemsSummary() },
		"when":    func(t time.Time) string { return t.UTC().Format("2006-01-02 15:04:05") },
	}).Parse(adminPage))
}

const adminPage = `<!doctype html>
<html lang="fr">
<head>
  <meta charset="utf-8">
  <title>Commandes Choufli</title>
  <style>
    body { font-family: Arial, sans-serif; margin: 24px; background: #f7f3ee; color: #1f1c18; }
    table { width: 100%; border-collapse: collapse; background: #fff; }
    th, td { padding: 10px; border-bottom: 1px solid #eee; text-align: left; vertical-align: top; }
    th { background: #1f1c18; color: #fff; }
    .empty { padding: 20px; background: #fff; }
    .delete-btn { background: #d64545; color: #fff; border: none; padding: 6px 10px; border-radius: 6px; cursor: pointer; }
  </style>
</head>
<body>
  <h1>Commandes recues</h1>
  {{- if .Orders }}
  <table>
    <thead>
      <tr><th>ID</th><th>Nom</th><th>Telephone</th><th>Adresse</th><th>Articles</th><th>Total</th><th>Date</th><th>Action</th></tr>
    </thead>
    <tbody>
    {{- range .Orders }}
      <tr>
        <td>{{ .ID }}</td>
        <td>{{ .Customer.Name }}</td>
        <td>{{ .Customer.Phone }}</td>
        <td>{{ .Customer.Address }}</td>
        <td>{{ summary . }}</td>
        <td>{{ .Total }} TND</td>
        <td>{{ when .CreatedAt }}</td>
        <td>
          <form method="post" action="/admin/delete" onsubmit="return confirm('Supprimer cette commande ?');">
            <input type="hidden" name="id" value="{{ .ID }}">
            <button type="submit" class="delete-btn">Supprimer</button>
          </form>
        </td>
      </tr>
    {{- end }}
    </tbody>
  </table>
  {{- else }}
  <div class="empty">Aucune commande pour le moment.</div>
  {{- end }}
</body>
</html>
`
