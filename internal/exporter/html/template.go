package html

// ReportTemplate is a single-page dashboard with tables and inline charts
const ReportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}} - {{.Date}}</title>
    <style>
        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }

        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
            background: #f4f6f3;
            color: #263238;
            line-height: 1.6;
        }

        .container {
            max-width: 1100px;
            margin: 0 auto;
            padding: 20px;
        }

        header {
            background: linear-gradient(135deg, #2e7d32 0%, #00796b 100%);
            color: white;
            padding: 32px 20px;
            margin-bottom: 24px;
            border-radius: 8px;
            box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1);
        }

        header h1 {
            font-size: 2.2em;
            margin-bottom: 6px;
        }

        header p {
            opacity: 0.9;
        }

        .card {
            background: white;
            padding: 20px;
            border-radius: 8px;
            margin-bottom: 24px;
            box-shadow: 0 2px 4px rgba(0, 0, 0, 0.05);
        }

        .card h2 {
            color: #2e7d32;
            margin-bottom: 12px;
            font-size: 1.3em;
        }

        .highlights li {
            margin-left: 20px;
        }

        table {
            width: 100%;
            border-collapse: collapse;
            font-size: 0.9em;
        }

        th {
            background: #e0e0e0;
            text-align: center;
            padding: 6px 8px;
            border: 1px solid #d4d4d4;
        }

        td {
            padding: 6px 8px;
            border: 1px solid #d4d4d4;
        }

        td.num {
            text-align: right;
            font-variant-numeric: tabular-nums;
        }

        .chart {
            display: block;
            max-width: 100%;
            margin: 16px auto 0;
        }

        .note {
            color: #757575;
            font-style: italic;
            margin-top: 8px;
        }

        .warnings td {
            color: #d32f2f;
        }

        footer {
            text-align: center;
            color: #9e9e9e;
            font-size: 0.85em;
            padding: 12px;
        }
    </style>
</head>
<body>
    <div class="container">
        <header>
            <h1>{{.Title}}</h1>
            <p>Generated on {{.Date}} from {{.Source}} (layout {{.Layout}})</p>
        </header>

        {{if .Highlights}}
        <section class="card highlights">
            <h2>Highlights</h2>
            <ul>
                {{range .Highlights}}<li>{{.}}</li>{{end}}
            </ul>
        </section>
        {{end}}

        {{range .Sections}}
        <section class="card{{if .Warning}} warnings{{end}}">
            <h2>{{.Grid.Title}}</h2>
            <table>
                <thead>
                    <tr>{{range .Grid.Headers}}<th>{{.}}</th>{{end}}</tr>
                </thead>
                <tbody>
                    {{$numeric := .NumericCols}}
                    {{range .Grid.Rows}}
                    <tr>{{range $i, $cell := .}}<td{{if index $numeric $i}} class="num"{{end}}>{{$cell}}</td>{{end}}</tr>
                    {{end}}
                </tbody>
            </table>
            {{if .Grid.Note}}<p class="note">{{.Grid.Note}}</p>{{end}}
            {{if .Chart}}<img class="chart" src="{{.Chart}}" alt="{{.Grid.Title}} chart">{{end}}
        </section>
        {{end}}

        <footer>survey-recon</footer>
    </div>
</body>
</html>
`
