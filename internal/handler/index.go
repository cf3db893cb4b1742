package handler

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Report Converter</title>
<style>
body { font-family: sans-serif; max-width: 40em; margin: 4em auto; }
fieldset { border: 1px solid #ccc; padding: 1.5em; }
</style>
</head>
<body>
<h1>Report Converter</h1>
<p>Upload a legacy report file to download it as a spreadsheet.</p>
<form action="/api/convert" method="post" enctype="multipart/form-data">
<fieldset>
<input type="file" name="file" accept=".rpt" required>
<button type="submit">Convert</button>
</fieldset>
</form>
</body>
</html>
`
