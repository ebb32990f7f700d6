package report

// htmlTemplate is the main HTML template for the report
const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}} - Simulation Report</title>
    <script src="https://cdn.jsdelivr.net/npm/chart.js"></script>
    <style>
        :root {
            --bg-primary: #ffffff;
            --bg-secondary: #f8fafc;
            --bg-card: #ffffff;
            --text-primary: #1e293b;
            --text-secondary: #64748b;
            --text-muted: #94a3b8;
            --border-color: #e2e8f0;
            --accent-primary: #3b82f6;
            --shadow: 0 1px 3px rgba(0, 0, 0, 0.1);
        }

        [data-theme="dark"] {
            --bg-primary: #0f172a;
            --bg-secondary: #1e293b;
            --bg-card: #1e293b;
            --text-primary: #f1f5f9;
            --text-secondary: #94a3b8;
            --text-muted: #64748b;
            --border-color: #334155;
            --shadow: 0 1px 3px rgba(0, 0, 0, 0.3);
        }

        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }

        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
            background-color: var(--bg-secondary);
            color: var(--text-primary);
            line-height: 1.6;
            min-height: 100vh;
        }

        .container {
            max-width: 1400px;
            margin: 0 auto;
            padding: 2rem;
        }

        .header {
            background: var(--bg-card);
            border-radius: 12px;
            padding: 2rem;
            margin-bottom: 2rem;
            box-shadow: var(--shadow);
            display: flex;
            justify-content: space-between;
            align-items: center;
            flex-wrap: wrap;
            gap: 1rem;
        }

        .header h1 {
            font-size: 1.75rem;
            font-weight: 700;
        }

        .header .meta {
            font-size: 0.875rem;
            color: var(--text-muted);
        }

        .theme-toggle {
            background: var(--bg-secondary);
            border: 1px solid var(--border-color);
            border-radius: 8px;
            padding: 0.5rem 1rem;
            cursor: pointer;
            color: var(--text-primary);
        }

        .chart-grid {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(450px, 1fr));
            gap: 1.5rem;
        }

        .chart-container {
            background: var(--bg-card);
            border-radius: 12px;
            padding: 1.5rem;
            box-shadow: var(--shadow);
        }

        .chart-title {
            font-size: 0.875rem;
            font-weight: 600;
            color: var(--text-secondary);
            margin-bottom: 1rem;
        }

        .chart-wrapper {
            position: relative;
        }

        table {
            width: 100%;
            margin-top: 1rem;
            border-collapse: collapse;
            font-size: 0.8rem;
        }

        th, td {
            text-align: right;
            padding: 0.35rem 0.5rem;
            border-bottom: 1px solid var(--border-color);
        }

        th:first-child, td:first-child {
            text-align: left;
        }

        th {
            color: var(--text-secondary);
            font-weight: 600;
        }

        .footer {
            text-align: center;
            color: var(--text-muted);
            font-size: 0.8rem;
            margin-top: 2rem;
        }

        @media (max-width: 768px) {
            .container {
                padding: 1rem;
            }

            .chart-grid {
                grid-template-columns: 1fr;
            }
        }
    </style>
</head>
<body>
    <div class="container">
        <header class="header">
            <div>
                <h1>{{.Title}}</h1>
                <div class="meta">{{len .Charts}} chart(s)</div>
            </div>
            <button class="theme-toggle" onclick="toggleTheme()">Toggle theme</button>
        </header>

        <div class="chart-grid">
            {{range .Charts}}
            <div class="chart-container"{{if .Width}} style="max-width: {{.Width}}px"{{end}}>
                <div class="chart-title">{{.Title}}</div>
                <div class="chart-wrapper" style="height: {{.Height}}px">
                    <canvas id="{{.ID}}"></canvas>
                </div>
                <table>
                    <thead>
                        <tr><th>Series</th><th>Samples</th><th>Missing</th><th>Min</th><th>Max</th></tr>
                    </thead>
                    <tbody>
                        {{range .Summary}}
                        <tr>
                            <td>{{.Label}}</td>
                            <td>{{formatNumber .Samples}}</td>
                            <td>{{formatNumber .Missing}}</td>
                            <td>{{formatValue .Min}}</td>
                            <td>{{formatValue .Max}}</td>
                        </tr>
                        {{end}}
                    </tbody>
                </table>
            </div>
            {{end}}
        </div>

        <footer class="footer">
            <p>Generated by coach • {{.GeneratedAt.Format "2006-01-02 15:04:05 MST"}}</p>
        </footer>
    </div>

    <script>
        function toggleTheme() {
            const html = document.documentElement;
            const newTheme = html.getAttribute('data-theme') === 'dark' ? 'light' : 'dark';
            html.setAttribute('data-theme', newTheme);
            localStorage.setItem('theme', newTheme);
            updateChartColors();
        }

        document.documentElement.setAttribute('data-theme', localStorage.getItem('theme') || 'light');

        function getChartColors() {
            const isDark = document.documentElement.getAttribute('data-theme') === 'dark';
            return {
                text: isDark ? '#f1f5f9' : '#1e293b',
                grid: isDark ? '#334155' : '#e2e8f0',
            };
        }

        const palette = ['#3b82f6', '#ef4444', '#22c55e', '#f59e0b', '#8b5cf6', '#ec4899', '#14b8a6', '#64748b'];

        const chartsData = {{.ChartsJSON}};
        const charts = [];

        function createCharts() {
            const colors = getChartColors();

            chartsData.forEach(chart => {
                const ctx = document.getElementById(chart.id);
                if (!ctx) {
                    return;
                }

                const datasets = chart.series.map((s, i) => ({
                    label: s.label,
                    data: s.points,
                    borderColor: palette[i % palette.length],
                    backgroundColor: 'transparent',
                    spanGaps: false,
                    pointRadius: 0,
                    borderWidth: 2,
                }));

                charts.push(new Chart(ctx.getContext('2d'), {
                    type: 'line',
                    data: { datasets: datasets },
                    options: {
                        responsive: true,
                        maintainAspectRatio: false,
                        parsing: { xAxisKey: 'x', yAxisKey: 'y' },
                        interaction: { mode: 'nearest', intersect: false },
                        plugins: {
                            legend: { display: chart.legend, labels: { color: colors.text, usePointStyle: true, pointStyle: 'line' } },
                        },
                        scales: {
                            x: {
                                type: 'linear',
                                title: { display: chart.xLabel !== '', text: chart.xLabel, color: colors.text },
                                ticks: { color: colors.text },
                                grid: { color: colors.grid },
                            },
                            y: {
                                title: { display: chart.yLabel !== '', text: chart.yLabel, color: colors.text },
                                ticks: { color: colors.text },
                                grid: { color: colors.grid },
                            }
                        }
                    }
                }));
            });
        }

        function updateChartColors() {
            const colors = getChartColors();
            charts.forEach(chart => {
                chart.options.plugins.legend.labels.color = colors.text;
                ['x', 'y'].forEach(axis => {
                    chart.options.scales[axis].ticks.color = colors.text;
                    chart.options.scales[axis].grid.color = colors.grid;
                    chart.options.scales[axis].title.color = colors.text;
                });
                chart.update();
            });
        }

        document.addEventListener('DOMContentLoaded', createCharts);
    </script>
</body>
</html>`
