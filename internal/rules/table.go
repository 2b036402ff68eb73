package rules

import "regexp"

// table is the full static rule set. Patterns compile at init, so a typo
// fails the process immediately; ValidateTable catches the semantic rest.
//
// Case-sensitive unless the rule's vendor format is case-insensitive by
// nature (declared with (?i)).
var table = []Rule{
	// ---- Secrets: cloud providers ----
	{CategorySecret, "AWS Access Key", regexp.MustCompile(`AKIA[0-9A-Z]{16}`), SeverityCritical, 0.95, HeuristicPrefix},
	{CategorySecret, "AWS Secret Key", regexp.MustCompile("(?i)(?:aws.?secret|secret.?key)[\"'`]?\\s*[:=]\\s*[\"'`]([A-Za-z0-9/+=]{40})[\"'`]"), SeverityCritical, 0.9, HeuristicEntropy},
	{CategorySecret, "GCP API Key", regexp.MustCompile(`AIza[0-9A-Za-z_-]{35}`), SeverityHigh, 0.95, HeuristicPrefix},
	{CategorySecret, "Google API Key", regexp.MustCompile("(?i)(?:google|gcp|firebase).?api.?key[\"'`]?\\s*[:=]\\s*[\"'`]([A-Za-z0-9_-]{39})[\"'`]"), SeverityHigh, 0.85, HeuristicEntropy},

	// ---- Secrets: payment ----
	{CategorySecret, "Stripe Secret Key", regexp.MustCompile(`sk_live_[0-9a-zA-Z]{24,}`), SeverityCritical, 0.95, HeuristicPrefix},
	{CategorySecret, "Stripe Publishable Key", regexp.MustCompile(`pk_live_[0-9a-zA-Z]{24,}`), SeverityMedium, 0.95, HeuristicPrefix},
	{CategorySecret, "Stripe Test Key", regexp.MustCompile(`sk_test_[0-9a-zA-Z]{24,}`), SeverityLow, 0.95, HeuristicPrefix},

	// ---- Secrets: code hosting / chat ----
	{CategorySecret, "GitHub Token", regexp.MustCompile(`gh[pou]_[0-9a-zA-Z]{36}`), SeverityHigh, 0.95, HeuristicPrefix},
	{CategorySecret, "Slack Token", regexp.MustCompile(`xox[baprs]-[0-9]{10,13}-[0-9]{10,13}[a-zA-Z0-9-]*`), SeverityHigh, 0.95, HeuristicPrefix},
	{CategorySecret, "Slack Webhook", regexp.MustCompile(`https://hooks\.slack\.com/services/T[a-zA-Z0-9_]+/B[a-zA-Z0-9_]+/[a-zA-Z0-9_]+`), SeverityHigh, 0.95, HeuristicPrefix},
	{CategorySecret, "Discord Webhook", regexp.MustCompile(`https://discord(?:app)?\.com/api/webhooks/[0-9]+/[A-Za-z0-9_-]+`), SeverityMedium, 0.95, HeuristicPrefix},
	{CategorySecret, "Discord Token", regexp.MustCompile(`[MN][A-Za-z\d]{23,}\.[\w-]{6}\.[\w-]{27}`), SeverityHigh, 0.8, HeuristicEntropy},

	// ---- Secrets: messaging / mail ----
	{CategorySecret, "Twilio API Key", regexp.MustCompile(`SK[0-9a-fA-F]{32}`), SeverityHigh, 0.85, HeuristicPrefix},
	{CategorySecret, "SendGrid API Key", regexp.MustCompile(`SG\.[a-zA-Z0-9_-]{22}\.[a-zA-Z0-9_-]{43}`), SeverityHigh, 0.95, HeuristicPrefix},
	{CategorySecret, "Mailgun API Key", regexp.MustCompile(`key-[0-9a-zA-Z]{32}`), SeverityHigh, 0.8, HeuristicEntropy},
	{CategorySecret, "Mailchimp API Key", regexp.MustCompile(`[0-9a-f]{32}-us[0-9]{1,2}`), SeverityHigh, 0.8, HeuristicEntropy},
	{CategorySecret, "Facebook Access Token", regexp.MustCompile(`EAACEdEose0cBA[0-9A-Za-z]+`), SeverityHigh, 0.9, HeuristicPrefix},

	// ---- Secrets: auth tokens ----
	{CategorySecret, "JWT Token", regexp.MustCompile(`eyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*`), SeverityHigh, 0.95, HeuristicPrefix},
	{CategorySecret, "Bearer Token", regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9_-]{20,}`), SeverityHigh, 0.8, HeuristicEntropy},
	{CategorySecret, "Basic Auth Credentials", regexp.MustCompile(`(?i)basic\s+[A-Za-z0-9+/=]{20,}`), SeverityHigh, 0.8, HeuristicEntropy},
	{CategorySecret, "Private Key", regexp.MustCompile(`-----BEGIN (?:RSA |EC |DSA |OPENSSH )?PRIVATE KEY-----`), SeverityCritical, 0.95, HeuristicPrefix},

	// ---- Secrets: connection strings ----
	{CategorySecret, "MongoDB Connection String", regexp.MustCompile("mongodb(?:\\+srv)?://[^\\s\"'`<>]+"), SeverityHigh, 0.9, HeuristicPrefix},
	{CategorySecret, "PostgreSQL Connection String", regexp.MustCompile("postgres(?:ql)?://[^\\s\"'`<>]+"), SeverityHigh, 0.9, HeuristicPrefix},
	{CategorySecret, "MySQL Connection String", regexp.MustCompile("mysql://[^\\s\"'`<>]+"), SeverityHigh, 0.9, HeuristicPrefix},
	{CategorySecret, "Redis Connection String", regexp.MustCompile("redis://[^\\s\"'`<>]+"), SeverityHigh, 0.9, HeuristicPrefix},

	// ---- Secrets: generic assignments ----
	{CategorySecret, "Generic API Key", regexp.MustCompile("(?i)(?:api[_-]?key|apikey|api[_-]?secret)[\"'`]?\\s*[:=]\\s*[\"'`]([A-Za-z0-9_-]{20,64})[\"'`]"), SeverityMedium, 0.6, HeuristicEntropy},
	{CategorySecret, "Hardcoded Password", regexp.MustCompile("(?i)(?:password|passwd|pwd)[\"'`]?\\s*[:=]\\s*[\"'`]([^\"'`\\s]{8,64})[\"'`]"), SeverityHigh, 0.6, HeuristicEntropy},
	{CategorySecret, "Generic Secret", regexp.MustCompile("(?i)(?:secret|token|auth)[\"'`]?\\s*[:=]\\s*[\"'`]([A-Za-z0-9_-]{16,64})[\"'`]"), SeverityMedium, 0.5, HeuristicEntropy},

	// ---- Endpoints ----
	{CategoryEndpoint, "API Path", regexp.MustCompile("[\"'`](/api/v?\\d*/[a-zA-Z0-9_/-]+)[\"'`]"), SeverityInfo, 0.8, HeuristicContext},
	{CategoryEndpoint, "Versioned Path", regexp.MustCompile("[\"'`](/v\\d+/[a-zA-Z0-9_/-]+)[\"'`]"), SeverityInfo, 0.8, HeuristicContext},
	{CategoryEndpoint, "Sensitive Path", regexp.MustCompile("(?i)[\"'`](/(?:admin|auth|user|users|login|logout|register|signup|reset|verify|confirm|account|profile|settings|dashboard|api|graphql|webhook|callback|oauth|token|upload|download|export|import|search|query)[a-zA-Z0-9_/-]*)[\"'`]"), SeverityInfo, 0.8, HeuristicContext},
	{CategoryEndpoint, "Parameterized Path", regexp.MustCompile("[\"'`](/[a-zA-Z0-9_-]+/:\\w+(?:/[a-zA-Z0-9_-]+)*)[\"'`]"), SeverityInfo, 0.8, HeuristicContext},
	{CategoryEndpoint, "Template Path", regexp.MustCompile("[\"'`](/[a-zA-Z0-9_-]+/\\{[^}]+\\}(?:/[a-zA-Z0-9_-]+)*)[\"'`]"), SeverityInfo, 0.8, HeuristicContext},
	{CategoryEndpoint, "Fetch Target", regexp.MustCompile("(?i)(?:fetch|axios|get|post|put|delete|patch)\\s*\\(\\s*[\"'`](/[^\"'`]+)[\"'`]"), SeverityInfo, 0.8, HeuristicContext},
	{CategoryEndpoint, "Route Assignment", regexp.MustCompile("(?i)(?:url|endpoint|path|route)\\s*[:=]\\s*[\"'`](/[^\"'`\\s]+)[\"'`]"), SeverityInfo, 0.8, HeuristicContext},

	// ---- URLs ----
	{CategoryURL, "Internal URL", regexp.MustCompile("(?i)https?://(?:localhost|127\\.0\\.0\\.1|0\\.0\\.0\\.0|internal|staging|dev|test|uat|qa|preprod)(?:[.:][^\\s\"'`<>]*)?"), SeverityHigh, 0.9, HeuristicContext},
	{CategoryURL, "IP Address URL", regexp.MustCompile("https?://\\d{1,3}\\.\\d{1,3}\\.\\d{1,3}\\.\\d{1,3}(?::[0-9]+)?[^\\s\"'`<>]*"), SeverityHigh, 0.9, HeuristicContext},
	{CategoryURL, "Non-Public Domain URL", regexp.MustCompile("(?i)https?://[a-zA-Z0-9-]+\\.(?:internal|local|corp|intranet|staging|dev|test)\\.[a-zA-Z]{2,}[^\\s\"'`<>]*"), SeverityMedium, 0.9, HeuristicContext},
	{CategoryURL, "External URL", regexp.MustCompile("https?://[a-zA-Z0-9][-a-zA-Z0-9]*(?:\\.[a-zA-Z0-9][-a-zA-Z0-9]*)+(?::[0-9]+)?(?:/[^\\s\"'`<>]*)?"), SeverityLow, 0.9, HeuristicContext},
}

// Table exposes the rule set read-only for startup validation and tests.
func Table() []Rule { return table }
