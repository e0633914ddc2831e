package report

// htmlTemplate is the main HTML template for the report
const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Name}} - Speedup Report</title>
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
            --accent-success: #22c55e;
            --accent-warning: #f59e0b;
            --accent-error: #ef4444;
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

        .header, .card {
            background: var(--bg-card);
            border-radius: 12px;
            padding: 1.5rem 2rem;
            margin-bottom: 2rem;
            box-shadow: var(--shadow);
        }

        .header {
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

        .meta {
            display: flex;
            gap: 2rem;
            margin-top: 0.5rem;
            font-size: 0.875rem;
            color: var(--text-muted);
        }

        .status {
            padding: 0.75rem 1.5rem;
            border-radius: 8px;
            font-weight: 600;
        }

        .status.pass {
            background-color: rgba(34, 197, 94, 0.1);
            color: var(--accent-success);
        }

        .status.fail {
            background-color: rgba(239, 68, 68, 0.1);
            color: var(--accent-error);
        }

        .theme-toggle {
            background: var(--bg-secondary);
            border: 1px solid var(--border-color);
            color: var(--text-primary);
            border-radius: 8px;
            padding: 0.5rem 1rem;
            cursor: pointer;
        }

        .charts {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(450px, 1fr));
            gap: 1.5rem;
            margin-bottom: 2rem;
        }

        .chart-container {
            position: relative;
            height: 320px;
        }

        h2 {
            font-size: 1.1rem;
            margin-bottom: 1rem;
        }

        table {
            width: 100%;
            border-collapse: collapse;
            font-size: 0.9rem;
        }

        th, td {
            padding: 0.5rem 0.75rem;
            text-align: right;
            border-bottom: 1px solid var(--border-color);
        }

        th:first-child, td:first-child {
            text-align: left;
        }

        th {
            color: var(--text-secondary);
            font-weight: 600;
        }

        td.pass { color: var(--accent-success); }
        td.skip { color: var(--text-muted); }
        td.fail { color: var(--accent-error); }

        .footer {
            text-align: center;
            color: var(--text-muted);
            font-size: 0.8rem;
        }
    </style>
</head>
<body>
    <div class="container">
        <header class="header">
            <div>
                <h1>{{.Name}}</h1>
                <div class="meta">
                    <span>{{.StartTime.Format "2006-01-02 15:04:05"}}</span>
                    <span>{{formatDuration .Duration}}</span>
                    <span>seed {{.Seed}}</span>
                    <span>repeat {{.Repeat}}</span>
                </div>
            </div>
            <div>
                <span class="status {{if .Passed}}pass{{else}}fail{{end}}">
                    {{if .Passed}}✓ ALL RESULTS VERIFIED{{else}}✗ {{.Failed}} FAILED RUNS{{end}}
                </span>
                <button class="theme-toggle" onclick="toggleTheme()">Theme</button>
            </div>
        </header>

        {{if .Tests}}
        <div class="charts">
            <div class="card"><h2>Speedup</h2><div class="chart-container"><canvas id="speedupChart"></canvas></div></div>
            <div class="card"><h2>Efficiency (%)</h2><div class="chart-container"><canvas id="efficiencyChart"></canvas></div></div>
            <div class="card"><h2>Time (ms)</h2><div class="chart-container"><canvas id="timeChart"></canvas></div></div>
        </div>
        {{end}}

        {{range .Tests}}
        <section class="card">
            <h2>{{if .Description}}{{.Description}} ({{.Label}}){{else}}{{.Label}}{{end}}</h2>
            <div class="meta">
                <span>K={{.K}}</span>
                <span>N={{.N}}</span>
                <span>{{formatNumber .TotalElements}} elements</span>
                <span>sequential {{formatMillis .Baseline.Mean}} ms</span>
            </div>
            <table>
                <thead>
                    <tr>
                        <th>Threads</th>
                        <th>Status</th>
                        <th>Time (ms)</th>
                        <th>Speedup</th>
                        <th>Efficiency</th>
                        <th>El/ms</th>
                        <th>Worker imbalance</th>
                    </tr>
                </thead>
                <tbody>
                    {{range .Rows}}
                    <tr>
                        <td>{{.Threads}}</td>
                        <td class="{{statusClass .Status}}">{{.Status}}{{if .Error}}: {{.Error}}{{end}}</td>
                        {{if .OK}}
                        <td>{{formatMillis .ParTime}}</td>
                        <td>{{printf "%.3f" .Speedup}}</td>
                        <td>{{printf "%.2f%%" .Efficiency}}</td>
                        <td>{{printf "%.0f" .Throughput}}</td>
                        <td>{{if .Workers}}{{printf "%.2f" .Workers.Imbalance}}{{end}}</td>
                        {{else}}
                        <td>N/A</td><td>N/A</td><td>N/A</td><td>N/A</td><td></td>
                        {{end}}
                    </tr>
                    {{end}}
                </tbody>
            </table>
        </section>
        {{end}}

        <footer class="footer">
            <p>Generated by sumbench • {{.EndTime.Format "2006-01-02 15:04:05 MST"}}</p>
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
                palette: ['#3b82f6', '#22c55e', '#f59e0b', '#ef4444', '#8b5cf6', '#ec4899'],
                reference: '#94a3b8',
            };
        }

        const seriesData = {{.SeriesJSON}};

        // Thread counts shared by all tests, in sweep order.
        const threadLabels = seriesData.length > 0 ? seriesData[0].threads : [];

        let speedupChart, efficiencyChart, timeChart;

        function lineDataset(label, data, color, dashed) {
            return {
                label: label,
                data: data,
                borderColor: color,
                backgroundColor: color,
                borderDash: dashed ? [6, 4] : [],
                pointRadius: dashed ? 0 : 4,
                borderWidth: 2,
                spanGaps: false,
            };
        }

        function chartOptions(colors, yTitle, logScale) {
            return {
                responsive: true,
                maintainAspectRatio: false,
                interaction: { mode: 'index', intersect: false },
                plugins: {
                    legend: { labels: { color: colors.text, usePointStyle: true } },
                },
                scales: {
                    x: {
                        title: { display: true, text: 'Threads', color: colors.text },
                        ticks: { color: colors.text },
                        grid: { color: colors.grid },
                    },
                    y: {
                        type: logScale ? 'logarithmic' : 'linear',
                        beginAtZero: !logScale,
                        title: { display: true, text: yTitle, color: colors.text },
                        ticks: { color: colors.text },
                        grid: { color: colors.grid },
                    },
                },
            };
        }

        function createCharts() {
            const colors = getChartColors();
            const color = i => colors.palette[i % colors.palette.length];

            const speedupSets = seriesData.map((s, i) => lineDataset(s.description || s.label, s.speedup, color(i), false));
            speedupSets.push(lineDataset('Ideal', threadLabels, colors.reference, true));
            speedupChart = new Chart(document.getElementById('speedupChart').getContext('2d'), {
                type: 'line',
                data: { labels: threadLabels, datasets: speedupSets },
                options: chartOptions(colors, 'Speedup', false),
            });

            const efficiencySets = seriesData.map((s, i) => lineDataset(s.description || s.label, s.efficiency, color(i), false));
            efficiencySets.push(lineDataset('Ideal', threadLabels.map(() => 100), colors.reference, true));
            efficiencyChart = new Chart(document.getElementById('efficiencyChart').getContext('2d'), {
                type: 'line',
                data: { labels: threadLabels, datasets: efficiencySets },
                options: chartOptions(colors, 'Efficiency (%)', false),
            });

            const timeSets = [];
            seriesData.forEach((s, i) => {
                timeSets.push(lineDataset((s.description || s.label) + ' parallel', s.parTimeMs, color(i), false));
                timeSets.push(lineDataset((s.description || s.label) + ' sequential', threadLabels.map(() => s.seqTimeMs), color(i), true));
            });
            timeChart = new Chart(document.getElementById('timeChart').getContext('2d'), {
                type: 'line',
                data: { labels: threadLabels, datasets: timeSets },
                options: chartOptions(colors, 'Time (ms)', true),
            });
        }

        function updateChartColors() {
            const colors = getChartColors();
            [speedupChart, efficiencyChart, timeChart].forEach(chart => {
                if (chart) {
                    chart.options.plugins.legend.labels.color = colors.text;
                    ['x', 'y'].forEach(axis => {
                        chart.options.scales[axis].ticks.color = colors.text;
                        chart.options.scales[axis].grid.color = colors.grid;
                        chart.options.scales[axis].title.color = colors.text;
                    });
                    chart.update();
                }
            });
        }

        document.addEventListener('DOMContentLoaded', function() {
            if (seriesData && seriesData.length > 0) {
                createCharts();
            }
        });
    </script>
</body>
</html>`
