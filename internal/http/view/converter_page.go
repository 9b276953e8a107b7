package view

import (
	"bytes"
	"html/template"
)

// ConverterPageData provides the dynamic fields required by the converter template.
type ConverterPageData struct {
	Title           string
	Dark            bool
	OutputLink      string
	DisplayWindowMS int64
	FadeDelayMS     int64
}

var converterPageTmpl = template.Must(template.New("converter_page").Parse(`
<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="utf-8" />
	<meta name="viewport" content="width=device-width, initial-scale=1" />
	<title>{{if .Title}}{{.Title}}{{else}}DriveFetch{{end}}</title>
	<style>
		:root {
			--bg: #f4f6fb;
			--card: #ffffff;
			--border: #d8deea;
			--text: #1c2433;
			--muted: #5d6b84;
			--accent: #2563eb;
			--accent-strong: #1d4ed8;
			--success: #16a34a;
			--error: #dc2626;
			--info: #0284c7;
			font-family: "Inter", -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif;
		}
		body.dark {
			--bg: #090a0f;
			--card: rgba(255, 255, 255, 0.05);
			--border: rgba(255, 255, 255, 0.15);
			--text: #e7ecff;
			--muted: #a1acc5;
			--accent: #7dd3fc;
			--accent-strong: #38bdf8;
		}
		* { box-sizing: border-box; }
		body {
			margin: 0;
			min-height: 100vh;
			display: flex;
			align-items: center;
			justify-content: center;
			background: var(--bg);
			color: var(--text);
			transition: background 0.3s ease, color 0.3s ease;
		}
		.card {
			background: var(--card);
			border: 1px solid var(--border);
			border-radius: 18px;
			padding: 32px;
			width: min(560px, 92vw);
			box-shadow: 0 25px 60px rgba(0,0,0,0.12);
		}
		h1 { font-size: 1.5rem; margin: 0 0 6px; }
		p.lead { color: var(--muted); margin-top: 0; }
		label { display: block; font-size: 0.85rem; color: var(--muted); margin: 18px 0 6px; }
		input[type="text"] {
			width: 100%;
			padding: 12px 14px;
			border-radius: 10px;
			border: 1px solid var(--border);
			background: transparent;
			color: var(--text);
			font-size: 0.95rem;
		}
		.actions { display: flex; gap: 12px; margin-top: 20px; flex-wrap: wrap; }
		button {
			display: inline-flex;
			align-items: center;
			justify-content: center;
			gap: 8px;
			padding: 0 24px;
			height: 44px;
			border-radius: 999px;
			border: none;
			background: linear-gradient(120deg, var(--accent), var(--accent-strong));
			color: #fff;
			font-weight: 600;
			font-size: 0.95rem;
			cursor: pointer;
			transition: transform 0.15s ease, opacity 0.15s ease;
		}
		button:hover { transform: translateY(-1px); opacity: 0.92; }
		button.loading .label { visibility: hidden; }
		button.loading::after {
			content: "";
			position: absolute;
			width: 18px;
			height: 18px;
			border: 2px solid rgba(255,255,255,0.4);
			border-top-color: #fff;
			border-radius: 50%;
			animation: spin 0.7s linear infinite;
		}
		button { position: relative; }
		button.disabled {
			pointer-events: none;
			opacity: 0.5;
			cursor: not-allowed;
		}
		@keyframes spin { to { transform: rotate(360deg); } }
		.toggle { display: flex; align-items: center; gap: 8px; margin-top: 24px; color: var(--muted); font-size: 0.85rem; }
		.toast {
			margin-top: 20px;
			padding: 12px 16px;
			border-radius: 10px;
			font-size: 0.9rem;
			opacity: 0;
			transition: opacity 0.4s ease;
		}
		.toast.visible { opacity: 1; }
		.toast.success { background: rgba(22, 163, 74, 0.12); color: var(--success); }
		.toast.error { background: rgba(220, 38, 38, 0.12); color: var(--error); }
		.toast.info { background: rgba(2, 132, 199, 0.12); color: var(--info); }
	</style>
</head>
<body{{if .Dark}} class="dark"{{end}}>
	<div class="card">
		<h1>Google Drive Direct Link</h1>
		<p class="lead">Paste a Drive share link and get a direct-download URL.</p>

		<label for="source">Google Drive share link</label>
		<input type="text" id="source" placeholder="https://drive.google.com/file/d/..." autocomplete="off" />

		<label for="output">Direct download link</label>
		<input type="text" id="output" readonly value="{{.OutputLink}}" />

		<div class="actions">
			<button id="generate"><span class="label">Generate</span></button>
			<button id="copy" class="disabled"><span class="label">Copy</span></button>
		</div>

		<div class="toggle">
			<input type="checkbox" id="theme-toggle"{{if .Dark}} checked{{end}} />
			<label for="theme-toggle" style="margin:0">Dark mode</label>
		</div>

		<div id="toast" class="toast"></div>
	</div>

	<script>
		(function() {
			const source = document.getElementById("source");
			const output = document.getElementById("output");
			const generateBtn = document.getElementById("generate");
			const copyBtn = document.getElementById("copy");
			const themeToggle = document.getElementById("theme-toggle");
			const toast = document.getElementById("toast");

			const displayWindow = {{.DisplayWindowMS}};
			const fadeDelay = {{.FadeDelayMS}};
			let hideTimer = null;
			let clearTimer = null;

			function showToast(status) {
				if (!status || !status.message) { return; }
				if (hideTimer) { clearTimeout(hideTimer); hideTimer = null; }
				if (clearTimer) { clearTimeout(clearTimer); clearTimer = null; }
				toast.textContent = status.message;
				toast.className = "toast visible " + status.severity;
				hideTimer = setTimeout(() => {
					toast.classList.remove("visible");
					clearTimer = setTimeout(() => {
						toast.textContent = "";
						toast.className = "toast";
					}, fadeDelay);
				}, displayWindow);
			}

			function refreshCopyEnablement() {
				copyBtn.classList.toggle("disabled", output.value === "");
			}

			async function generate() {
				output.value = "";
				refreshCopyEnablement();
				generateBtn.classList.add("loading");
				try {
					const resp = await fetch("/api/convert", {
						method: "POST",
						headers: { "Content-Type": "application/json" },
						body: JSON.stringify({ link: source.value }),
					});
					const data = await resp.json();
					output.value = data.output_link || "";
					showToast(data.status);
					if (data.output_link) {
						output.focus();
						output.select();
					}
				} catch (err) {
					showToast({ message: "Request failed. Please try again.", severity: "error" });
				} finally {
					generateBtn.classList.remove("loading");
					refreshCopyEnablement();
				}
			}

			async function reportCopy(succeeded) {
				try {
					const resp = await fetch("/api/copy", {
						method: "POST",
						headers: { "Content-Type": "application/json" },
						body: JSON.stringify({ succeeded: succeeded }),
					});
					const data = await resp.json();
					showToast(data.status);
				} catch (err) {
					// Status stays local; nothing else to do.
				}
			}

			async function copyLink() {
				if (output.value === "") {
					await reportCopy(false);
					return;
				}
				output.focus();
				output.select();
				let ok = false;
				try {
					await navigator.clipboard.writeText(output.value);
					ok = true;
				} catch (err) {
					ok = false;
				}
				window.getSelection().removeAllRanges();
				await reportCopy(ok);
			}

			function toggleTheme() {
				const dark = themeToggle.checked;
				document.body.classList.toggle("dark", dark);
				fetch("/api/theme", {
					method: "PUT",
					headers: { "Content-Type": "application/json" },
					body: JSON.stringify({ dark: dark }),
				}).catch(() => {});
			}

			generateBtn.addEventListener("click", generate);
			copyBtn.addEventListener("click", copyLink);
			themeToggle.addEventListener("change", toggleTheme);
			refreshCopyEnablement();
		})();
	</script>
</body>
</html>
`))

// RenderConverterPage expands the converter page template with the provided data.
func RenderConverterPage(data ConverterPageData) (string, error) {
	if data.Title == "" {
		data.Title = "DriveFetch"
	}
	var buf bytes.Buffer
	if err := converterPageTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
