package skills

// Categories in the order they are matched and reported.
var Categories = []string{
	"programming_languages",
	"data_science",
	"big_data",
	"databases",
	"cloud_platforms",
	"web_technologies",
	"mobile_development",
	"tools_and_platforms",
	"business_intelligence",
	"testing_qa",
	"soft_skills",
	"certifications",
}

// Taxonomy is the skill dictionary driving JD/resume matching. Skill names are
// stored in their human-readable form; matching canonicalizes them the same
// way document text is normalized.
var Taxonomy = map[string][]string{
	"programming_languages": {
		"python", "java", "javascript", "typescript", "c++", "c#", "go",
		"rust", "scala", "r", "matlab", "php", "ruby", "swift", "kotlin",
	},
	"data_science": {
		"machine learning", "deep learning", "nlp",
		"computer vision", "data analysis", "statistics", "pandas", "numpy",
		"scikit-learn", "tensorflow", "pytorch", "keras", "opencv", "matplotlib",
		"seaborn", "plotly", "jupyter", "anaconda", "data mining", "predictive modeling",
	},
	"big_data": {
		"spark", "kafka", "hadoop", "pyspark", "hive", "storm", "flink",
		"elasticsearch", "solr", "databricks", "snowflake", "redshift",
		"bigquery", "data pipeline", "etl", "data warehouse",
	},
	"databases": {
		"sql", "mysql", "postgresql", "oracle", "sqlite", "nosql", "mongodb",
		"cassandra", "redis", "dynamodb", "neo4j", "couchbase", "influxdb",
	},
	"cloud_platforms": {
		"aws", "azure", "gcp", "google cloud", "docker", "kubernetes",
		"terraform", "ansible", "jenkins", "ci/cd", "devops", "serverless",
		"lambda", "cloud functions", "containerization",
	},
	"web_technologies": {
		"html", "css", "react", "angular", "vue", "node.js", "express",
		"django", "flask", "fastapi", "spring", "laravel", "bootstrap",
		"sass", "webpack",
	},
	"mobile_development": {
		"android", "ios", "react native", "flutter", "xamarin", "ionic",
		"objective-c", "cordova",
	},
	"tools_and_platforms": {
		"git", "github", "gitlab", "bitbucket", "jira", "confluence",
		"linux", "unix", "bash", "powershell", "vim", "vscode", "intellij",
	},
	"business_intelligence": {
		"tableau", "power bi", "qlik", "looker", "excel",
		"data visualization", "dashboard", "reporting",
	},
	"testing_qa": {
		"selenium", "junit", "testng", "pytest", "jest", "cypress",
		"postman", "automation testing", "manual testing",
		"load testing", "performance testing", "unit testing",
	},
	"soft_skills": {
		"communication", "leadership", "teamwork", "problem solving",
		"analytical thinking", "project management", "agile", "scrum",
		"critical thinking", "time management", "adaptability", "creativity",
	},
	"certifications": {
		"aws certified", "azure certified", "google certified", "pmp",
		"scrum master", "comptia", "cisco", "microsoft certified",
		"oracle certified", "mongodb certified",
	},
}

var suggestionTemplates = map[string]string{
	"programming_languages": "Complete online courses for %s programming. Build 2-3 projects showcasing %s skills. Contribute to open-source %s projects.",
	"data_science":          "Take specialized courses in %s. Work on real-world datasets using %s. Create a portfolio project demonstrating %s expertise.",
	"big_data":              "Get hands-on experience with %s through cloud platforms. Complete certification courses. Build end-to-end projects using %s.",
	"databases":             "Practice %s queries and database design. Complete database administration courses. Build applications with %s integration.",
	"cloud_platforms":       "Pursue %s certifications. Set up personal projects using %s services. Learn infrastructure as code with %s.",
	"web_technologies":      "Build responsive web applications using %s. Complete full-stack development courses. Deploy projects showcasing %s skills.",
	"mobile_development":    "Build and publish mobile apps with %s. Complete mobile development courses. Showcase %s projects in your portfolio.",
	"tools_and_platforms":   "Get proficient in %s through daily practice. Complete relevant certifications. Use %s in your projects and document the process.",
	"business_intelligence": "Build dashboards and reports with %s. Complete data visualization courses. Publish %s work in your portfolio.",
	"testing_qa":            "Write automated test suites with %s. Complete QA and test-engineering courses. Add %s coverage to your projects.",
	"soft_skills":           "Develop %s through practical experience. Join relevant workshops or courses. Demonstrate %s through project leadership and team collaboration.",
	"certifications":        "Schedule and prepare for the %s exam. Complete official training material. List in-progress %s study on your resume.",
}
